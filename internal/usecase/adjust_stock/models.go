package adjust_stock

// Request модель запроса на корректировку остатка
type Request struct {
	CallerID   int64
	ProductID  int64
	VariantKey string // размер варианта
	Delta      int    // >0 возврат на склад, <0 списание
	EventKey   string // ключ клиента, хранится как domain.ManualEventKey
}

// Result результат корректировки
type Result struct {
	Applied     bool // false: событие уже было обработано
	ProductID   int64
	ProductName string
	VariantKey  string
	OldStock    int
	NewStock    int
	LowStock    bool // остаток опустился до порога с уровня выше порога
}
