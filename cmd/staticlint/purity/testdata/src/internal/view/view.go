package view

import (
	"math/rand"
	"os"
	"time"
)

func Expired(expiresAt, now time.Time) bool {
	return expiresAt.Before(now)
}

func Clock() time.Time {
	return time.Now() // want "вызов time.Now в чистом пакете запрещен"
}

func Shuffle(ids []string) {
	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] }) // want "использование math/rand в чистом пакете запрещено"
}

func Zone() string {
	return os.Getenv("TZ") // want "вызов os.Getenv в чистом пакете запрещен"
}
