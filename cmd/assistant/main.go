package main

import (
	"os"
	"time"

	"github.com/yourusername/pc-build-assistant/internal/cli"
	"github.com/yourusername/pc-build-assistant/pkg/logger"
)

func main() {
	initDefaultTimezone()
	logger.Init()
	os.Exit(cli.Execute())
}

// initDefaultTimezone jurnal va tarix vaqtlari do'kon vaqtida bo'lsin
func initDefaultTimezone() {
	const tzName = "Asia/Almaty"
	if loc, err := time.LoadLocation(tzName); err == nil {
		time.Local = loc
		return
	}
	time.Local = time.FixedZone(tzName, 5*60*60)
}
