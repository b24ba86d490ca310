package other

import (
	"os"
	"time"
)

func Clock() time.Time {
	return time.Now()
}

func Zone() string {
	return os.Getenv("TZ")
}
