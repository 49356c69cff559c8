package notifier

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Notifier асинхронная отправка; реализуют Dispatcher и Noop
type Notifier interface {
	Notify(n Notification)
}
