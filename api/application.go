package api

import (
	"time"

	"github.com/color-game/palettetool/assembler"
	"github.com/color-game/palettetool/datastore"
)

type Config struct {
	HTTPPort         string
	DatabaseType     string
	DatabasePath     string
	DatabaseHost     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	SSLMode          string
	JwtSecret        string
	JwtTokenDuration int // seconds
	AllowedOrigins   []string
	RetentionDays    int
	ConversionTool   string
	MaxBodyBytes     int64
	DevMode          bool
}

type Application struct {
	Config      Config
	PaletteRepo datastore.PaletteRepository
	Assembler   *assembler.Assembler
	Clock       func() time.Time
}

func (app *Application) now() time.Time {
	if app.Clock == nil {
		return time.Now()
	}
	return app.Clock()
}

func (app *Application) maxBodyBytes() int64 {
	if app.Config.MaxBodyBytes <= 0 {
		return 4 << 20
	}
	return app.Config.MaxBodyBytes
}
