package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	calendarCache "github.com/m04kA/SMC-SalonService/internal/infra/cache/calendar"
	calendarRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/calendar"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type stubCalendarRepo struct {
	slots []string
	calls int
}

func (s *stubCalendarRepo) Get(context.Context) (*calendarRepo.Calendar, error) {
	s.calls++
	if len(s.slots) == 0 {
		return nil, calendarRepo.ErrCalendarNotConfigured
	}
	return &calendarRepo.Calendar{Slots: append([]string(nil), s.slots...)}, nil
}

type stubCache struct {
	slots []string
	sets  int
}

func (s *stubCache) Get(context.Context) ([]string, error) {
	if s.slots == nil {
		return nil, calendarCache.ErrCacheMiss
	}
	return s.slots, nil
}

func (s *stubCache) Set(_ context.Context, slots []string) error {
	s.sets++
	s.slots = slots
	return nil
}

type stubUsers struct {
	users []*domain.User
	calls int
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.calls++
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (s *stubUsers) FindByName(_ context.Context, name string, role domain.Role) ([]*domain.User, error) {
	s.calls++
	out := make([]*domain.User, 0)
	for _, u := range s.users {
		if u.Name == name && u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type stubTimeOff struct {
	ranges []*domain.TimeOffRange
	calls  int
}

func (s *stubTimeOff) ListApprovedStartingBy(_ context.Context, stylistID int64, date time.Time) ([]*domain.TimeOffRange, error) {
	s.calls++
	out := make([]*domain.TimeOffRange, 0)
	for _, r := range s.ranges {
		if r.StylistID == stylistID && r.Status == domain.TimeOffApproved && !r.StartDate.After(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubBookings struct {
	bookings []*domain.Booking
}

func (s *stubBookings) GetByStylistWithFilter(_ context.Context, f domain.StylistBookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.StylistID != f.StylistID {
			continue
		}
		if f.StartDate != nil && b.Date.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && b.Date.After(*f.EndDate) {
			continue
		}
		if !f.IncludeInactive && !b.IsActive() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type stubServices struct {
	services map[int64]*domain.SalonService
}

func (s *stubServices) GetByID(_ context.Context, id int64) (*domain.SalonService, error) {
	svc, ok := s.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return svc, nil
}

func slotSet(slots ...string) domain.SlotSet {
	ts := make([]types.TimeString, len(slots))
	for i, s := range slots {
		ts[i] = types.TimeString(s)
	}
	return domain.MustSlotSet(ts...)
}

func occupiedSet(slots ...string) OccupiedSet {
	o := make(OccupiedSet, len(slots))
	for _, s := range slots {
		o[types.TimeString(s)] = struct{}{}
	}
	return o
}

func timeStrings(slots ...string) []types.TimeString {
	out := make([]types.TimeString, len(slots))
	for i, s := range slots {
		out[i] = types.TimeString(s)
	}
	return out
}

func mustDate(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// fixture набор стабов с общей конфигурацией салона
type fixture struct {
	calendar *stubCalendarRepo
	cache    *stubCache
	users    *stubUsers
	timeOff  *stubTimeOff
	bookings *stubBookings
	services *stubServices

	resolver *Resolver
}

func newFixture(slots ...string) *fixture {
	f := &fixture{
		calendar: &stubCalendarRepo{slots: slots},
		cache:    &stubCache{},
		users: &stubUsers{users: []*domain.User{
			{ID: 10, Name: "Мария", Role: domain.RoleWorker},
			{ID: 11, Name: "Ирина", Role: domain.RoleWorker},
			{ID: 12, Name: "Ирина", Role: domain.RoleWorker},
			{ID: 1, Name: "Анна", Role: domain.RoleCustomer},
		}},
		timeOff:  &stubTimeOff{},
		bookings: &stubBookings{},
		services: &stubServices{services: map[int64]*domain.SalonService{
			1: {ID: 1, Name: "Стрижка", DurationHours: decimalHours("1")},
			2: {ID: 2, Name: "Окрашивание", DurationHours: decimalHours("2")},
			3: {ID: 3, Name: "Укладка", DurationHours: decimalHours("0.5")},
			4: {ID: 4, Name: "Кератин", DurationHours: decimalHours("2.5")},
		}},
	}

	log := logger.NewNop()
	f.resolver = NewResolver(
		NewCalendar(f.calendar, f.cache, log),
		NewTimeOffIndex(f.users, f.timeOff, log),
		NewOccupancy(f.bookings, f.services, log),
		f.services,
		log,
	)
	return f
}
