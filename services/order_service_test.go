package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adisyon-app/adisyon/models"
)

func reloadSession(t *testing.T, svc *SessionService, sessionID uint) *models.TableSession {
	t.Helper()
	session, err := svc.GetSessionDetails(sessionID)
	assert.NoError(t, err)
	return session
}

func TestUpsertItemsBulkReplacesAndTotals(t *testing.T) {
	db := setupServiceDB(t)
	table := seedTable(t, db)
	pub := &recorderPublisher{}
	sessions := NewSessionService(db, pub)
	orders := NewOrderService(db, pub)

	session, _ := sessions.OpenTable(table.RegionID, table.TableNumber)

	updated, err := orders.UpsertItemsBulk(session.ID, []ItemInput{
		{Name: "Coffee", Price: 20, Quantity: 2},
	})
	assert.NoError(t, err)
	assert.Equal(t, float64(40), updated.Total)
	assert.Len(t, updated.Items, 1)

	// a second bulk call replaces the whole set
	updated, err = orders.UpsertItemsBulk(session.ID, []ItemInput{
		{Name: "Tea", Price: 10, Quantity: 1},
		{Name: "Baklava", Price: 35, Quantity: 2},
	})
	assert.NoError(t, err)
	assert.Equal(t, float64(80), updated.Total)
	assert.Len(t, updated.Items, 2)

	// broadcast carries the new total
	assert.Equal(t, float64(80), pub.last().Total)
	assert.Equal(t, models.SessionOpen, pub.last().Status)
}

func TestUpsertItemsBulkDropsZeroQuantityLines(t *testing.T) {
	db := setupServiceDB(t)
	table := seedTable(t, db)
	pub := &recorderPublisher{}
	sessions := NewSessionService(db, pub)
	orders := NewOrderService(db, pub)

	session, _ := sessions.OpenTable(table.RegionID, table.TableNumber)

	updated, err := orders.UpsertItemsBulk(session.ID, []ItemInput{
		{Name: "Coffee", Price: 20, Quantity: 0},
		{Name: "Tea", Price: 10, Quantity: 3},
	})
	assert.NoError(t, err)
	assert.Len(t, updated.Items, 1)
	assert.Equal(t, "Tea", updated.Items[0].Name)
	assert.Equal(t, float64(30), updated.Total)
}

func TestUpsertItemsBulkUnknownSession(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db, &recorderPublisher{})

	_, err := orders.UpsertItemsBulk(42, []ItemInput{{Name: "Coffee", Price: 20, Quantity: 1}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertItemsIncrementalStockDeltas(t *testing.T) {
	db := setupServiceDB(t)
	table := seedTable(t, db)
	product := seedProduct(t, db, "Kola", 25, 20)
	pub := &recorderPublisher{}
	sessions := NewSessionService(db, pub)
	orders := NewOrderService(db, pub)

	session, _ := sessions.OpenTable(table.RegionID, table.TableNumber)

	// quantity 5 consumes 5
	updated, err := orders.UpsertItemsIncremental(session.ID, []ItemInput{
		{ProductID: &product.ID, Name: product.Name, Price: product.Price, Quantity: 5},
	})
	assert.NoError(t, err)
	assert.Equal(t, 15, productStock(t, db, product.ID))
	assert.Equal(t, float64(125), updated.Total)

	// lowering to 2 returns 3, net change -2
	updated, err = orders.UpsertItemsIncremental(session.ID, []ItemInput{
		{ProductID: &product.ID, Name: product.Name, Price: product.Price, Quantity: 2},
	})
	assert.NoError(t, err)
	assert.Equal(t, 18, productStock(t, db, product.ID))
	assert.Equal(t, float64(50), updated.Total)
	assert.Len(t, updated.Items, 1)
	assert.Equal(t, 2, updated.Items[0].Quantity)
}

func TestUpsertItemsIncrementalRemovesAtZero(t *testing.T) {
	db := setupServiceDB(t)
	table := seedTable(t, db)
	product := seedProduct(t, db, "Kola", 25, 20)
	pub := &recorderPublisher{}
	sessions := NewSessionService(db, pub)
	orders := NewOrderService(db, pub)

	session, _ := sessions.OpenTable(table.RegionID, table.TableNumber)

	_, err := orders.UpsertItemsIncremental(session.ID, []ItemInput{
		{ProductID: &product.ID, Name: product.Name, Price: product.Price, Quantity: 3},
	})
	assert.NoError(t, err)

	updated, err := orders.UpsertItemsIncremental(session.ID, []ItemInput{
		{ProductID: &product.ID, Name: product.Name, Price: product.Price, Quantity: 0},
	})
	assert.NoError(t, err)
	assert.Len(t, updated.Items, 0)
	assert.Equal(t, float64(0), updated.Total)
	assert.Equal(t, 20, productStock(t, db, product.ID))
}

func TestUpsertItemsIncrementalAllowsOversell(t *testing.T) {
	db := setupServiceDB(t)
	table := seedTable(t, db)
	product := seedProduct(t, db, "Kola", 25, 2)
	pub := &recorderPublisher{}
	sessions := NewSessionService(db, pub)
	orders := NewOrderService(db, pub)

	session, _ := sessions.OpenTable(table.RegionID, table.TableNumber)

	// no floor check: the counter goes negative instead of the order failing
	_, err := orders.UpsertItemsIncremental(session.ID, []ItemInput{
		{ProductID: &product.ID, Name: product.Name, Price: product.Price, Quantity: 5},
	})
	assert.NoError(t, err)
	assert.Equal(t, -3, productStock(t, db, product.ID))
}

func TestUpsertItemsIncrementalAdHocLines(t *testing.T) {
	db := setupServiceDB(t)
	table := seedTable(t, db)
	product := seedProduct(t, db, "Menemen", 45, 10)
	pub := &recorderPublisher{}
	sessions := NewSessionService(db, pub)
	orders := NewOrderService(db, pub)

	session, _ := sessions.OpenTable(table.RegionID, table.TableNumber)

	// an ad hoc line sharing a product's name must not collide with it
	updated, err := orders.UpsertItemsIncremental(session.ID, []ItemInput{
		{ProductID: &product.ID, Name: "Menemen", Price: 45, Quantity: 1},
		{Name: "Menemen", Price: 40, Quantity: 2},
	})
	assert.NoError(t, err)
	assert.Len(t, updated.Items, 2)
	assert.Equal(t, float64(125), updated.Total)
	// the ad hoc line never touches stock
	assert.Equal(t, 9, productStock(t, db, product.ID))
}

func TestUpsertKeepsTotalConsistentWithItems(t *testing.T) {
	db := setupServiceDB(t)
	table := seedTable(t, db)
	product := seedProduct(t, db, "Kola", 25, 50)
	pub := &recorderPublisher{}
	sessions := NewSessionService(db, pub)
	orders := NewOrderService(db, pub)

	session, _ := sessions.OpenTable(table.RegionID, table.TableNumber)

	_, err := orders.UpsertItemsIncremental(session.ID, []ItemInput{
		{ProductID: &product.ID, Name: product.Name, Price: product.Price, Quantity: 4},
		{Name: "Su", Price: 5, Quantity: 2},
	})
	assert.NoError(t, err)
	_, err = orders.UpsertItemsBulk(session.ID, []ItemInput{
		{Name: "Su", Price: 5, Quantity: 6},
	})
	assert.NoError(t, err)

	details := reloadSession(t, sessions, session.ID)
	var recomputed float64
	for _, item := range details.Items {
		recomputed += item.Price * float64(item.Quantity)
	}
	assert.Equal(t, recomputed, details.Total)
}

func TestUpsertPreservesSessionStatusInBroadcast(t *testing.T) {
	db := setupServiceDB(t)
	table := seedTable(t, db)
	pub := &recorderPublisher{}
	sessions := NewSessionService(db, pub)
	orders := NewOrderService(db, pub)

	session, _ := sessions.OpenTable(table.RegionID, table.TableNumber)
	_, err := sessions.PayTable(session.ID, "cash")
	assert.NoError(t, err)

	// historical orders can still be corrected without reopening
	_, err = orders.UpsertItemsIncremental(session.ID, []ItemInput{
		{Name: "Çay", Price: 10, Quantity: 1},
	})
	assert.NoError(t, err)
	assert.Equal(t, models.SessionPaid, pub.last().Status)
}
