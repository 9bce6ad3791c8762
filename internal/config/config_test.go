package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
[server]
http_port = 9090

[database]
host = "localhost"
port = 5432
user = "postgres"
password = "postgres"
dbname = "reservations"
sslmode = "disable"

[logs]
file = "logs/app.log"
level = "debug"

[booking]
cancel_min_notice_minutes = 45
min_charge_minutes = 5

[pricing.PRO]
hourly_rate = 8.0

[pricing.PRO.bundles]
3 = 22.0
5 = 35.0

[pricing.VIP]
hourly_rate = 25.0

[pricing.VIP.bundles]
2 = 45.0
3 = 60.0
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "reservations", cfg.Database.DBName)
	assert.Equal(t, 45, cfg.Booking.CancelMinNoticeMinutes)
	assert.Equal(t, 5, cfg.Booking.MinChargeMinutes)

	// Дефолты для незаполненных секций
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_BookingDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[database]
host = "localhost"
dbname = "reservations"
`))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultCancelMinNoticeMinutes, cfg.Booking.CancelMinNoticeMinutes)
	assert.Equal(t, domain.DefaultMinChargeMinutes, cfg.Booking.MinChargeMinutes)
}

func TestLoad_MissingDatabaseHost(t *testing.T) {
	_, err := Load(writeConfig(t, `
[database]
dbname = "reservations"
`))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestPriceConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	priceConfig, err := cfg.PriceConfig()
	require.NoError(t, err)

	pro, ok := priceConfig[domain.TypePro]
	require.True(t, ok)
	assert.Equal(t, 8.0, pro.HourlyRate)
	assert.Equal(t, map[int]float64{3: 22, 5: 35}, pro.Bundles)

	vip, ok := priceConfig[domain.TypeVIP]
	require.True(t, ok)
	assert.Equal(t, map[int]float64{2: 45, 3: 60}, vip.Bundles)
}

func TestPriceConfig_InvalidBundleKey(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[database]
host = "localhost"
dbname = "reservations"

[pricing.PRO]
hourly_rate = 8.0

[pricing.PRO.bundles]
"three" = 22.0
`))
	require.NoError(t, err)

	_, err = cfg.PriceConfig()
	assert.Error(t, err)
}

func TestLoad_NegativeHourlyRateRejected(t *testing.T) {
	_, err := Load(writeConfig(t, `
[database]
host = "localhost"
dbname = "reservations"

[pricing.PRO]
hourly_rate = -1.0
`))
	assert.Error(t, err)
}
