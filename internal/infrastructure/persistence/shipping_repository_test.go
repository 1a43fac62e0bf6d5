package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/erp/shipping/internal/domain/shipping"
)

// setupShippingTestDB creates an in-memory SQLite database with the shipping
// workflow tables
func setupShippingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE shipment_labels (
			shipment_id TEXT PRIMARY KEY,
			order_id TEXT,
			order_key TEXT,
			user_id TEXT,
			ship_date TEXT,
			shipment_cost NUMERIC,
			insurance_cost NUMERIC,
			tracking_number TEXT,
			carrier_code TEXT,
			service_code TEXT,
			label_data TEXT,
			url_reference TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE carrier_settings (
			id TEXT PRIMARY KEY,
			service_provider TEXT NOT NULL UNIQUE,
			enabled INTEGER NOT NULL DEFAULT 0,
			api_id TEXT,
			api_password TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE addresses (
			name TEXT PRIMARY KEY,
			address_title TEXT,
			address_line1 TEXT NOT NULL,
			address_line2 TEXT,
			city TEXT NOT NULL,
			state TEXT,
			country TEXT,
			pincode TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE contacts (
			name TEXT PRIMARY KEY,
			first_name TEXT,
			last_name TEXT,
			phone TEXT,
			email TEXT,
			gender TEXT,
			user TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE shipments (
			name TEXT PRIMARY KEY,
			service_provider TEXT,
			shipment_id TEXT,
			carrier TEXT,
			carrier_service TEXT,
			shipment_amount NUMERIC NOT NULL DEFAULT 0,
			awb_number TEXT,
			status TEXT NOT NULL DEFAULT 'Draft',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE delivery_notes (
			name TEXT PRIMARY KEY,
			tracking_number TEXT,
			tracking_url TEXT,
			tracking_status TEXT,
			tracking_status_info TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func strPtr(s string) *string { return &s }

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestGormShipmentLabelRepository_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts a new record", func(t *testing.T) {
		db := setupShippingTestDB(t)
		repo := NewGormShipmentLabelRepository(db)

		record := shipping.ShipmentRecord{
			ShipmentID:   "SS1",
			CarrierCode:  strPtr("stamps_com"),
			LabelData:    strPtr("JVBERi0xLjQ="),
			ShipmentCost: decPtr(decimal.NewFromFloat(12.4)),
		}
		require.NoError(t, repo.Upsert(ctx, record))

		got, err := repo.Get(ctx, "SS1")
		require.NoError(t, err)
		assert.Equal(t, "SS1", got.ShipmentID)
		require.NotNil(t, got.CarrierCode)
		assert.Equal(t, "stamps_com", *got.CarrierCode)
		require.NotNil(t, got.ShipmentCost)
		assert.True(t, got.ShipmentCost.Equal(decimal.NewFromFloat(12.4)))
		assert.Nil(t, got.TrackingNumber)
		assert.Nil(t, got.OrderID)
	})

	t.Run("update overwrites only populated fields", func(t *testing.T) {
		db := setupShippingTestDB(t)
		repo := NewGormShipmentLabelRepository(db)

		require.NoError(t, repo.Upsert(ctx, shipping.ShipmentRecord{
			ShipmentID:     "SS1",
			CarrierCode:    strPtr("stamps_com"),
			LabelData:      strPtr("old-label"),
			TrackingNumber: strPtr("AWB-1"),
		}))

		// Second upsert carries tracking only; the label must survive.
		require.NoError(t, repo.Upsert(ctx, shipping.ShipmentRecord{
			ShipmentID:     "SS1",
			TrackingNumber: strPtr("AWB-2"),
		}))

		got, err := repo.Get(ctx, "SS1")
		require.NoError(t, err)
		require.NotNil(t, got.LabelData)
		assert.Equal(t, "old-label", *got.LabelData)
		require.NotNil(t, got.TrackingNumber)
		assert.Equal(t, "AWB-2", *got.TrackingNumber)
		require.NotNil(t, got.CarrierCode)
		assert.Equal(t, "stamps_com", *got.CarrierCode)
	})

	t.Run("update with no populated fields is a no-op", func(t *testing.T) {
		db := setupShippingTestDB(t)
		repo := NewGormShipmentLabelRepository(db)

		require.NoError(t, repo.Upsert(ctx, shipping.ShipmentRecord{
			ShipmentID: "SS1",
			LabelData:  strPtr("label"),
		}))
		require.NoError(t, repo.Upsert(ctx, shipping.ShipmentRecord{ShipmentID: "SS1"}))

		got, err := repo.Get(ctx, "SS1")
		require.NoError(t, err)
		require.NotNil(t, got.LabelData)
		assert.Equal(t, "label", *got.LabelData)
	})

	t.Run("upserts for different shipments stay separate", func(t *testing.T) {
		db := setupShippingTestDB(t)
		repo := NewGormShipmentLabelRepository(db)

		require.NoError(t, repo.Upsert(ctx, shipping.ShipmentRecord{ShipmentID: "SS1", LabelData: strPtr("a")}))
		require.NoError(t, repo.Upsert(ctx, shipping.ShipmentRecord{ShipmentID: "SS2", LabelData: strPtr("b")}))

		var count int64
		require.NoError(t, db.Table("shipment_labels").Count(&count).Error)
		assert.EqualValues(t, 2, count)
	})
}

func TestGormShipmentLabelRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	db := setupShippingTestDB(t)
	repo := NewGormShipmentLabelRepository(db)

	require.NoError(t, repo.Upsert(ctx, shipping.ShipmentRecord{
		ShipmentID:     "SS1",
		LabelData:      strPtr("JVBERi0xLjQ="),
		TrackingNumber: strPtr("AWB-1"),
	}))
	require.NoError(t, repo.Upsert(ctx, shipping.ShipmentRecord{
		ShipmentID: "SS2",
	}))

	t.Run("label data", func(t *testing.T) {
		label, err := repo.LabelData(ctx, "SS1")
		require.NoError(t, err)
		assert.Equal(t, "JVBERi0xLjQ=", label)
	})

	t.Run("tracking number", func(t *testing.T) {
		tracking, err := repo.TrackingNumber(ctx, "SS1")
		require.NoError(t, err)
		assert.Equal(t, "AWB-1", tracking)
	})

	t.Run("missing shipment", func(t *testing.T) {
		_, err := repo.LabelData(ctx, "unknown")
		assert.ErrorIs(t, err, shipping.ErrLabelNotFound)
	})

	t.Run("row without label data", func(t *testing.T) {
		_, err := repo.LabelData(ctx, "SS2")
		assert.ErrorIs(t, err, shipping.ErrLabelNotFound)
		_, err = repo.TrackingNumber(ctx, "SS2")
		assert.ErrorIs(t, err, shipping.ErrLabelNotFound)
	})
}

func TestGormCarrierSettingsRepository_Get(t *testing.T) {
	ctx := context.Background()
	db := setupShippingTestDB(t)
	repo := NewGormCarrierSettingsRepository(db)

	require.NoError(t, db.Exec(
		`INSERT INTO carrier_settings (id, service_provider, enabled, api_id, api_password, created_at, updated_at)
		 VALUES (?, ?, 1, 'key', 'secret', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		uuid.NewString(), string(shipping.ProviderShipStation),
	).Error)

	t.Run("found", func(t *testing.T) {
		settings, err := repo.Get(ctx, shipping.ProviderShipStation)
		require.NoError(t, err)
		assert.True(t, settings.Enabled)
		assert.Equal(t, "key", settings.APIID)
		assert.Equal(t, "secret", settings.APIPassword)
	})

	t.Run("missing provider", func(t *testing.T) {
		_, err := repo.Get(ctx, shipping.ServiceProvider("Unknown"))
		assert.ErrorIs(t, err, shipping.ErrSettingsNotFound)
	})
}

func TestGormAddressRepository_Resolve(t *testing.T) {
	ctx := context.Background()
	db := setupShippingTestDB(t)
	repo := NewGormAddressRepository(db)

	require.NoError(t, db.Exec(
		`INSERT INTO addresses (name, address_title, address_line1, address_line2, city, state, country, pincode, created_at, updated_at)
		 VALUES ('warehouse-main', 'Main Warehouse', 'Lagerstrasse 1', 'Tor 4', 'Stuttgart', 'BW', 'DE', '70173', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
	).Error)

	addr, err := repo.Resolve(ctx, "warehouse-main")
	require.NoError(t, err)
	assert.Equal(t, "Main Warehouse", addr.Title)
	assert.Equal(t, "Stuttgart", addr.City)
	assert.Equal(t, "DE", addr.CountryCode)
	assert.Equal(t, "70173", addr.Pincode)

	_, err = repo.Resolve(ctx, "missing")
	assert.ErrorIs(t, err, shipping.ErrAddressNotFound)
}

func TestGormContactRepository_Resolve(t *testing.T) {
	ctx := context.Background()
	db := setupShippingTestDB(t)
	repo := NewGormContactRepository(db)

	require.NoError(t, db.Exec(
		`INSERT INTO contacts (name, first_name, last_name, phone, email, gender, user, created_at, updated_at)
		 VALUES ('contact-1', 'Max', 'Muster', '+49 170 1234567', 'max@example.test', 'Male', 'max@example.test', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
	).Error)

	t.Run("by name", func(t *testing.T) {
		contact, err := repo.Resolve(ctx, "contact-1")
		require.NoError(t, err)
		assert.Equal(t, "Max", contact.FirstName)
		assert.Equal(t, "Male", contact.Gender)
	})

	t.Run("company contact by user", func(t *testing.T) {
		contact, err := repo.ResolveCompanyContact(ctx, "max@example.test")
		require.NoError(t, err)
		assert.Equal(t, "contact-1", contact.Name)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := repo.Resolve(ctx, "missing")
		assert.ErrorIs(t, err, shipping.ErrContactNotFound)
		_, err = repo.ResolveCompanyContact(ctx, "nobody@example.test")
		assert.ErrorIs(t, err, shipping.ErrContactNotFound)
	})
}

func TestGormShipmentRepository_ApplyShipmentResult(t *testing.T) {
	ctx := context.Background()
	db := setupShippingTestDB(t)
	repo := NewGormShipmentRepository(db)

	require.NoError(t, db.Exec(
		`INSERT INTO shipments (name, status, created_at, updated_at)
		 VALUES ('SHIP-0001', 'Submitted', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
	).Error)

	result := shipping.ShipmentResult{
		ServiceProvider: shipping.ProviderShipStation,
		ShipmentID:      "SS123",
		Carrier:         "stamps_com",
		CarrierService:  "usps_priority_mail",
		ShipmentAmount:  decimal.NewFromFloat(12.4),
		AWBNumber:       "AWB-777",
	}
	require.NoError(t, repo.ApplyShipmentResult(ctx, "SHIP-0001", result))

	var row struct {
		ServiceProvider string
		ShipmentID      string
		Carrier         string
		CarrierService  string
		AWBNumber       string
		Status          string
	}
	require.NoError(t, db.Table("shipments").
		Select("service_provider, shipment_id, carrier, carrier_service, awb_number, status").
		Where("name = ?", "SHIP-0001").
		Scan(&row).Error)
	assert.Equal(t, "ShipStation", row.ServiceProvider)
	assert.Equal(t, "SS123", row.ShipmentID)
	assert.Equal(t, "stamps_com", row.Carrier)
	assert.Equal(t, "usps_priority_mail", row.CarrierService)
	assert.Equal(t, "AWB-777", row.AWBNumber)
	assert.Equal(t, shipping.StatusBooked, row.Status)

	t.Run("missing shipment", func(t *testing.T) {
		err := repo.ApplyShipmentResult(ctx, "SHIP-9999", result)
		assert.ErrorIs(t, err, shipping.ErrShipmentNotFound)
	})
}

func TestGormDeliveryNoteRepository_UpdateTracking(t *testing.T) {
	ctx := context.Background()
	db := setupShippingTestDB(t)
	repo := NewGormDeliveryNoteRepository(db)

	require.NoError(t, db.Exec(
		`INSERT INTO delivery_notes (name, created_at, updated_at)
		 VALUES ('DN-0001', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
	).Error)

	info := shipping.TrackingInfo{
		AWBNumber:          "AWB-777",
		TrackingURL:        "https://example.test/track/AWB-777",
		TrackingStatus:     "In Transit",
		TrackingStatusInfo: "Departed facility",
	}
	require.NoError(t, repo.UpdateTracking(ctx, "DN-0001", info))

	var row struct {
		TrackingNumber     string
		TrackingURL        string
		TrackingStatus     string
		TrackingStatusInfo string
	}
	require.NoError(t, db.Table("delivery_notes").
		Select("tracking_number, tracking_url, tracking_status, tracking_status_info").
		Where("name = ?", "DN-0001").
		Scan(&row).Error)
	assert.Equal(t, "AWB-777", row.TrackingNumber)
	assert.Equal(t, "https://example.test/track/AWB-777", row.TrackingURL)
	assert.Equal(t, "In Transit", row.TrackingStatus)
	assert.Equal(t, "Departed facility", row.TrackingStatusInfo)

	t.Run("missing note", func(t *testing.T) {
		err := repo.UpdateTracking(ctx, "DN-9999", info)
		assert.ErrorIs(t, err, shipping.ErrDeliveryNoteNotFound)
	})
}
