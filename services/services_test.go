package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/rcoffee/database"
	"github.com/yeremiapane/rcoffee/database/dbtest"
	"github.com/yeremiapane/rcoffee/events"
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/services"
	"github.com/yeremiapane/rcoffee/utils"
)

// Seeded user ids.
const (
	superAdminID uint = 1
	adminID      uint = 2
	cashierID    uint = 3
	customerID   uint = 4
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) Close() error { return nil }

func (r *recorder) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

type failingPublisher struct {
	mock.Mock
}

func (m *failingPublisher) Publish(ctx context.Context, e events.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *failingPublisher) Close() error { return nil }

type fixture struct {
	users         *services.UserService
	reservations  *services.ReservationService
	payments      *services.PaymentService
	orders        *services.OrderService
	notifications *services.NotificationService
	menu          *services.MenuService
	settings      *services.SettingsService
	reports       *services.ReportService
}

func newFixture(t *testing.T, pub events.Publisher, strictOrders bool) fixture {
	t.Helper()
	db := dbtest.Seeded(t)

	userRepo := database.NewUserRepository(db)
	resRepo := database.NewReservationRepository(db)
	orderRepo := database.NewOrderRepository(db)
	settings := services.NewSettingsService(database.NewSettingsRepository(db))
	notes := services.NewNotificationService(database.NewNotificationRepository(db), userRepo, pub)

	return fixture{
		users:         services.NewUserService(userRepo),
		reservations:  services.NewReservationService(resRepo, database.NewTableRepository(db), notes, pub, nil),
		payments:      services.NewPaymentService(resRepo, notes, pub),
		orders:        services.NewOrderService(orderRepo, database.NewMenuRepository(db), pub, strictOrders),
		notifications: notes,
		menu:          services.NewMenuService(database.NewMenuRepository(db), nil),
		settings:      settings,
		reports:       services.NewReportService(resRepo, orderRepo, settings),
	}
}

func staff() *models.User {
	return &models.User{ID: cashierID, Role: models.RoleCashier, Status: models.UserStatusApproved}
}

func customer() *models.User {
	return &models.User{ID: customerID, Role: models.RoleCustomer, Status: models.UserStatusApproved}
}

func booking(guests int) services.CreateReservationInput {
	return services.CreateReservationInput{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Phone:  "555-0100",
		Date:   "2025-06-01",
		Time:   "7:00 PM",
		Guests: guests,
	}
}

func TestReservationPicksSmallestFittingTable(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	res, err := f.reservations.Create(ctx, customerID, booking(4))
	require.NoError(t, err)

	assert.Equal(t, uint(16), res.TableID)
	assert.Equal(t, models.ReservationPending, res.Status)
	require.NotNil(t, res.Payment)
	assert.Equal(t, 80.0, res.Payment.Amount)
	assert.Equal(t, models.PaymentPending, res.Payment.Status)

	again, err := f.reservations.Create(ctx, customerID, booking(4))
	require.NoError(t, err)
	assert.Equal(t, uint(17), again.TableID)
}

func TestReservationNoCapacity(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	_, err := f.reservations.Create(ctx, customerID, booking(9))
	assert.ErrorIs(t, err, services.ErrNoCapacity)

	for i := 0; i < 5; i++ {
		_, err := f.reservations.Create(ctx, customerID, booking(8))
		require.NoError(t, err)
	}
	_, err = f.reservations.Create(ctx, customerID, booking(7))
	assert.ErrorIs(t, err, services.ErrNoCapacity)
}

// staleAvailability reports every table as free, the way a booking that
// raced another one sees the world between its check and its write.
type staleAvailability struct {
	*database.ReservationRepository
}

func (staleAvailability) OccupiedTableIDs(context.Context, string, string) ([]uint, error) {
	return nil, nil
}

func TestConcurrentBookingMovesToNextTable(t *testing.T) {
	db := dbtest.Seeded(t)
	notes := services.NewNotificationService(database.NewNotificationRepository(db), database.NewUserRepository(db), nil)
	racing := services.NewReservationService(
		staleAvailability{database.NewReservationRepository(db)},
		database.NewTableRepository(db), notes, nil, nil)
	ctx := context.Background()

	first, err := racing.Create(ctx, customerID, booking(4))
	require.NoError(t, err)
	assert.Equal(t, uint(16), first.TableID)

	logs := logtest.NewLocal(utils.InfoLogger)
	second, err := racing.Create(ctx, customerID, booking(4))
	require.NoError(t, err)
	assert.Equal(t, uint(17), second.TableID)

	var retried *logrus.Entry
	for _, e := range logs.AllEntries() {
		if e.Message == "table taken concurrently, trying next" {
			retried = e
		}
	}
	require.NotNil(t, retried)
	assert.Equal(t, uint(16), retried.Data["table_id"])
	assert.Equal(t, "7:00 PM", retried.Data["slot"])
	assert.NotContains(t, retried.Data, "time")

	for want := uint(46); want <= 50; want++ {
		res, err := racing.Create(ctx, customerID, booking(8))
		require.NoError(t, err)
		assert.Equal(t, want, res.TableID)
	}
	_, err = racing.Create(ctx, customerID, booking(8))
	assert.ErrorIs(t, err, services.ErrNoCapacity)
}

func TestAvailabilityExcludesHeldTables(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()
	q := services.AvailabilityQuery{Date: "2025-06-01", Time: "7:00 PM", Guests: 6}

	before, err := f.reservations.AvailableTables(ctx, q)
	require.NoError(t, err)
	assert.Len(t, before, 15)
	for _, tbl := range before {
		assert.GreaterOrEqual(t, tbl.Capacity, 6)
	}

	res, err := f.reservations.Create(ctx, customerID, booking(6))
	require.NoError(t, err)
	assert.Equal(t, uint(36), res.TableID)

	after, err := f.reservations.AvailableTables(ctx, q)
	require.NoError(t, err)
	assert.Len(t, after, 14)

	other, err := f.reservations.AvailableTables(ctx, services.AvailabilityQuery{Date: "2025-06-01", Time: "7:30 PM", Guests: 6})
	require.NoError(t, err)
	assert.Len(t, other, 15)

	_, err = f.reservations.Cancel(ctx, customer(), res.ID)
	require.NoError(t, err)
	released, err := f.reservations.AvailableTables(ctx, q)
	require.NoError(t, err)
	assert.Len(t, released, 15)
}

func TestAvailabilityValidation(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	_, err := f.reservations.AvailableTables(ctx, services.AvailabilityQuery{Date: "06/01/2025", Time: "7:00 PM", Guests: 2})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = f.reservations.AvailableTables(ctx, services.AvailabilityQuery{Date: "2025-06-01", Time: "9:30 PM", Guests: 2})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = f.reservations.AvailableTables(ctx, services.AvailabilityQuery{Date: "2025-06-01", Time: "7:00 PM"})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestConfirmNotifiesOwner(t *testing.T) {
	pub := &recorder{}
	f := newFixture(t, pub, true)
	ctx := context.Background()

	res, err := f.reservations.Create(ctx, customerID, booking(2))
	require.NoError(t, err)

	confirmed, err := f.reservations.UpdateStatus(ctx, res.ID, models.ReservationConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, confirmed.Status)

	list, err := f.notifications.ListForUser(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Reservation Confirmed", list[0].Title)
	assert.Contains(t, list[0].Message, "Jun 1, 2025 at 7:00 PM")
	assert.Equal(t, models.NotificationReservation, list[0].Type)
	assert.Equal(t, models.NotificationUnread, list[0].Status)

	assert.Equal(t, []events.Type{
		events.ReservationCreated,
		events.NotificationCreated,
		events.ReservationStatusChanged,
	}, pub.types())
}

func TestReservationTransitionsAreStrict(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	res, err := f.reservations.Create(ctx, customerID, booking(2))
	require.NoError(t, err)

	_, err = f.reservations.UpdateStatus(ctx, res.ID, models.ReservationFinished)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	_, err = f.reservations.UpdateStatus(ctx, res.ID, models.ReservationConfirmed)
	require.NoError(t, err)
	done, err := f.reservations.UpdateStatus(ctx, res.ID, models.ReservationFinished)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationFinished, done.Status)

	_, err = f.reservations.UpdateStatus(ctx, res.ID, models.ReservationPending)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	_, err = f.reservations.UpdateStatus(ctx, res.ID, "seated")
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = f.reservations.UpdateStatus(ctx, 999, models.ReservationConfirmed)
	assert.ErrorIs(t, err, services.ErrNotFound)

	list, err := f.notifications.ListForUser(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Thank You for Visiting", list[0].Title)
}

func TestReservationVisibility(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	res, err := f.reservations.Create(ctx, customerID, booking(2))
	require.NoError(t, err)
	_, err = f.reservations.Create(ctx, 99, booking(2))
	require.NoError(t, err)

	stranger := &models.User{ID: 99, Role: models.RoleCustomer}
	_, err = f.reservations.Get(ctx, stranger, res.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
	_, err = f.reservations.Cancel(ctx, stranger, res.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	mine, err := f.reservations.List(ctx, customer())
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := f.reservations.List(ctx, staff())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	png, err := f.reservations.CheckInQR(ctx, customer(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestPaymentStatusIsPermissive(t *testing.T) {
	pub := &recorder{}
	f := newFixture(t, pub, true)
	ctx := context.Background()

	res, err := f.reservations.Create(ctx, customerID, booking(3))
	require.NoError(t, err)

	for _, st := range []models.PaymentStatus{models.PaymentPaid, models.PaymentRefunded, models.PaymentPending, models.PaymentPaid} {
		got, err := f.payments.UpdatePaymentStatus(ctx, res.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, got.Payment.Status)
		assert.Equal(t, 60.0, got.Payment.Amount)
	}

	_, err = f.payments.UpdatePaymentStatus(ctx, res.ID, "void")
	assert.ErrorIs(t, err, services.ErrValidation)
	_, err = f.payments.UpdatePaymentStatus(ctx, 404, models.PaymentPaid)
	assert.ErrorIs(t, err, services.ErrNotFound)

	list, err := f.notifications.ListForUser(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "Payment Received", list[0].Title)
	assert.Contains(t, list[0].Message, "$60.00")
	assert.Equal(t, models.NotificationPayment, list[0].Type)
	assert.Equal(t, "Payment Updated", list[1].Title)
	assert.Equal(t, "Payment Refunded", list[2].Title)
}

func TestOrderCreateSnapshotsItems(t *testing.T) {
	pub := &recorder{}
	f := newFixture(t, pub, true)
	ctx := context.Background()

	total := 3.5*2 + 4.5
	order, err := f.orders.Create(ctx, customerID, services.CreateOrderInput{
		Items: []services.OrderItemInput{
			{MenuItemID: 1, Name: "Espresso", Price: 3.5, Quantity: 2},
			{MenuItemID: 2, Quantity: 1},
		},
		Total: &total,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 11.5, order.Total)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Cappuccino", order.Items[1].Name)
	assert.Equal(t, 4.5, order.Items[1].Price)

	got, err := f.orders.Get(ctx, customer(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Total, got.Total)
	assert.Equal(t, "Espresso", got.Items[0].Name)

	_, err = f.orders.Get(ctx, &models.User{ID: 50, Role: models.RoleCustomer}, order.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	assert.Equal(t, []events.Type{events.OrderCreated}, pub.types())
}

func TestOrderCreateRejectsBadInput(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	wrong := 1.0
	_, err := f.orders.Create(ctx, customerID, services.CreateOrderInput{
		Items: []services.OrderItemInput{{MenuItemID: 1, Quantity: 1}},
		Total: &wrong,
	})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = f.orders.Create(ctx, customerID, services.CreateOrderInput{})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = f.orders.Create(ctx, customerID, services.CreateOrderInput{
		Items: []services.OrderItemInput{{MenuItemID: 1, Quantity: 0}},
	})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = f.orders.Create(ctx, customerID, services.CreateOrderInput{
		Items: []services.OrderItemInput{{MenuItemID: 500, Quantity: 1}},
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrderTransitions(t *testing.T) {
	ctx := context.Background()
	items := services.CreateOrderInput{Items: []services.OrderItemInput{{MenuItemID: 1, Quantity: 1}}}

	t.Run("strict", func(t *testing.T) {
		f := newFixture(t, nil, true)
		order, err := f.orders.Create(ctx, customerID, items)
		require.NoError(t, err)

		_, err = f.orders.UpdateStatus(ctx, order.ID, models.OrderCompleted)
		assert.ErrorIs(t, err, services.ErrInvalidTransition)

		_, err = f.orders.UpdateStatus(ctx, order.ID, models.OrderProcessing)
		require.NoError(t, err)
		_, err = f.orders.UpdateStatus(ctx, order.ID, models.OrderPending)
		assert.ErrorIs(t, err, services.ErrInvalidTransition)
		done, err := f.orders.UpdateStatus(ctx, order.ID, models.OrderCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.OrderCompleted, done.Status)
	})

	t.Run("permissive", func(t *testing.T) {
		f := newFixture(t, nil, false)
		order, err := f.orders.Create(ctx, customerID, items)
		require.NoError(t, err)

		done, err := f.orders.UpdateStatus(ctx, order.ID, models.OrderCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.OrderCompleted, done.Status)

		back, err := f.orders.UpdateStatus(ctx, order.ID, models.OrderPending)
		require.NoError(t, err)
		assert.Equal(t, models.OrderPending, back.Status)

		_, err = f.orders.UpdateStatus(ctx, order.ID, "shipped")
		assert.ErrorIs(t, err, services.ErrValidation)

		list, err := f.notifications.ListForUser(ctx, customerID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestOrdersListNewestFirst(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()
	items := services.CreateOrderInput{Items: []services.OrderItemInput{{MenuItemID: 1, Quantity: 1}}}

	first, err := f.orders.Create(ctx, customerID, items)
	require.NoError(t, err)
	second, err := f.orders.Create(ctx, customerID, items)
	require.NoError(t, err)
	_, err = f.orders.Create(ctx, 77, items)
	require.NoError(t, err)

	mine, err := f.orders.ListForUser(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	all, err := f.orders.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestNotificationMarkReadTwice(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	n, err := f.notifications.Create(ctx, services.CreateNotificationInput{
		UserID:  customerID,
		Title:   "Welcome",
		Message: "Your first coffee is on us.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.NotificationSystem, n.Type)

	count, err := f.notifications.UnreadCount(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	for i := 0; i < 2; i++ {
		read, err := f.notifications.MarkRead(ctx, customer(), n.ID)
		require.NoError(t, err)
		assert.Equal(t, models.NotificationRead, read.Status)
	}

	count, err = f.notifications.UnreadCount(ctx, customerID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = f.notifications.MarkRead(ctx, staff(), n.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.notifications.Create(ctx, services.CreateNotificationInput{UserID: 404, Title: "x", Message: "y"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = f.notifications.Create(ctx, services.CreateNotificationInput{UserID: customerID, Title: "x", Message: "y", Type: "promo"})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestPublisherFailuresDoNotFailRequests(t *testing.T) {
	pub := &failingPublisher{}
	bounded := mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})
	pub.On("Publish", bounded, mock.Anything).Return(errors.New("broker down"))
	f := newFixture(t, pub, true)
	ctx := context.Background()

	res, err := f.reservations.Create(ctx, customerID, booking(2))
	require.NoError(t, err)
	_, err = f.reservations.UpdateStatus(ctx, res.ID, models.ReservationConfirmed)
	require.NoError(t, err)
	_, err = f.payments.UpdatePaymentStatus(ctx, res.ID, models.PaymentPaid)
	require.NoError(t, err)

	list, err := f.notifications.ListForUser(ctx, customerID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	pub.AssertCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	user, err := f.users.Register(ctx, services.RegisterInput{
		Name: "Sam", Email: "Sam@Example.com ", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.Equal(t, models.UserStatusApproved, user.Status)
	assert.Equal(t, "sam@example.com", user.Email)

	_, err = f.users.Register(ctx, services.RegisterInput{Name: "Sam", Email: "sam@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, services.ErrEmailInUse)

	_, err = f.users.Register(ctx, services.RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, services.ErrValidation)

	authed, err := f.users.Authenticate(ctx, "sam@example.com", "secret1")
	require.NoError(t, err)
	assert.Empty(t, authed.Password)

	_, err = f.users.Authenticate(ctx, "sam@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = f.users.Authenticate(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	login, err := f.users.Login(ctx, "sam@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, user.ID, login.User.ID)

	require.NoError(t, f.users.Logout(login.Token))
	assert.Error(t, f.users.Logout(login.Token))
}

func TestPendingCashierCannotLogin(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	cashier, err := f.users.Register(ctx, services.RegisterInput{
		Name: "Casey", Email: "casey@rcoffee.com", Password: "cashier1", Role: models.RoleCashier,
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusPending, cashier.Status)

	_, err = f.users.Login(ctx, "casey@rcoffee.com", "cashier1")
	require.ErrorIs(t, err, services.ErrAccountPending)
	assert.Contains(t, err.Error(), "Account Pending")

	_, err = f.users.CurrentUser(ctx, cashier.ID)
	assert.ErrorIs(t, err, services.ErrAccountPending)

	pending, err := f.users.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = f.users.Approve(ctx, customer(), cashier.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	admin := &models.User{ID: adminID, Role: models.RoleAdmin}
	approved, err := f.users.Approve(ctx, admin, cashier.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusApproved, approved.Status)

	_, err = f.users.Login(ctx, "casey@rcoffee.com", "cashier1")
	assert.NoError(t, err)
}

func TestUserAdministration(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()
	admin := &models.User{ID: adminID, Role: models.RoleAdmin}
	super := &models.User{ID: superAdminID, Role: models.RoleSuperAdmin}

	assert.ErrorIs(t, f.users.Delete(ctx, admin, superAdminID), services.ErrForbidden)
	assert.ErrorIs(t, f.users.Delete(ctx, admin, adminID), services.ErrValidation)
	assert.ErrorIs(t, f.users.Delete(ctx, customer(), cashierID), services.ErrForbidden)

	_, err := f.users.Add(ctx, admin, services.AddUserInput{Name: "X", Email: "x@rcoffee.com", Password: "secret1", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, services.ErrForbidden)

	added, err := f.users.Add(ctx, super, services.AddUserInput{Name: "Ada", Email: "ada@rcoffee.com", Password: "secret1", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusApproved, added.Status)

	admins, err := f.users.List(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, admins, 2)

	name := "Ada Lovelace"
	updated, err := f.users.Update(ctx, super, added.ID, services.UpdateUserInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	taken := "customer@example.com"
	_, err = f.users.Update(ctx, super, added.ID, services.UpdateUserInput{Email: &taken})
	assert.ErrorIs(t, err, services.ErrEmailInUse)

	_, err = f.users.Update(ctx, customer(), added.ID, services.UpdateUserInput{Name: &name})
	assert.ErrorIs(t, err, services.ErrForbidden)

	require.NoError(t, f.users.Delete(ctx, admin, added.ID))
	_, err = f.users.Get(ctx, added.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestMenuService(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	coffee, err := f.menu.List(ctx, models.CategoryCoffee)
	require.NoError(t, err)
	assert.Len(t, coffee, 5)

	_, err = f.menu.List(ctx, "soup")
	assert.ErrorIs(t, err, services.ErrValidation)

	item, err := f.menu.Create(ctx, services.MenuItemInput{Name: "Flat White", Price: 4.25, Category: models.CategoryCoffee})
	require.NoError(t, err)

	_, err = f.menu.Create(ctx, services.MenuItemInput{Name: "Free Lunch", Price: -1, Category: models.CategoryLunch})
	assert.ErrorIs(t, err, services.ErrValidation)

	item, err = f.menu.Update(ctx, item.ID, services.MenuItemInput{Name: "Flat White", Price: 4.5, Category: models.CategoryCoffee})
	require.NoError(t, err)
	assert.Equal(t, 4.5, item.Price)

	require.NoError(t, f.menu.Delete(ctx, item.ID))
	assert.ErrorIs(t, f.menu.Delete(ctx, item.ID), services.ErrNotFound)
}

func TestSettingsService(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	s, err := f.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "R-Coffee", s.Name)

	_, err = f.settings.Update(ctx, services.SettingsInput{Name: "", Email: "nope"})
	assert.ErrorIs(t, err, services.ErrValidation)

	updated, err := f.settings.Update(ctx, services.SettingsInput{Name: "R-Coffee Downtown", Email: "hello@rcoffee.com"})
	require.NoError(t, err)
	assert.Equal(t, "R-Coffee Downtown", updated.Name)

	s, err = f.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "R-Coffee Downtown", s.Name)
}

func TestReportsAndStats(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	a, err := f.reservations.Create(ctx, customerID, booking(4))
	require.NoError(t, err)
	_, err = f.reservations.Create(ctx, customerID, booking(2))
	require.NoError(t, err)
	_, err = f.payments.UpdatePaymentStatus(ctx, a.ID, models.PaymentPaid)
	require.NoError(t, err)
	_, err = f.orders.Create(ctx, customerID, services.CreateOrderInput{Items: []services.OrderItemInput{{MenuItemID: 1, Quantity: 1}}})
	require.NoError(t, err)

	report, err := f.reports.PaymentReport(ctx)
	require.NoError(t, err)
	assert.Len(t, report.Rows, 2)
	assert.Equal(t, 80.0, report.Totals[models.PaymentPaid])
	assert.Equal(t, 40.0, report.Totals[models.PaymentPending])
	assert.Equal(t, 1, report.Counts[models.PaymentPaid])

	pdf, err := f.reports.PaymentReportPDF(ctx)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))

	stats, err := f.reports.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Reservations["pending"])
	assert.Equal(t, int64(1), stats.Orders["pending"])
	assert.Equal(t, 80.0, stats.PaidRevenue)
}
