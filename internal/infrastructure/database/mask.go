package database

import (
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/doeshing/sqai-go/internal/domain"
)

const maskedPassword = "***"

// MaskDSN replaces the password in dsn for display.
func MaskDSN(driver, dsn string) string {
	if dsn == "" {
		return ""
	}
	if driver == domain.DriverPostgres || strings.Contains(dsn, "://") {
		return maskURL(dsn)
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return maskSimple(dsn)
	}
	if cfg.Passwd == "" {
		return dsn
	}
	cfg.Passwd = maskedPassword
	return cfg.FormatDSN()
}

func maskURL(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return maskSimple(dsn)
	}
	if u.User == nil {
		return dsn
	}
	if _, ok := u.User.Password(); !ok {
		return dsn
	}
	u.User = url.UserPassword(u.User.Username(), maskedPassword)
	return u.String()
}

// maskSimple handles the user:password@ pattern when parsing fails.
func maskSimple(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at == -1 {
		return dsn
	}
	colon := strings.LastIndex(dsn[:at], ":")
	if colon == -1 {
		return dsn
	}
	if scheme := strings.Index(dsn, "://"); scheme != -1 && colon < scheme+3 {
		return dsn
	}
	return dsn[:colon+1] + maskedPassword + dsn[at:]
}
