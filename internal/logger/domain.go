package logger

const NA = "N/A"

// log level
const (
	LL_ERROR LogLevel = iota
	LL_FATAL
	LL_INFO
	LL_DEBUG
)

// log stream
const (
	LS_ORDERS Logstream = iota
	LS_AUTH
	LS_WEBHOOKS
	LS_MERCHANTS
	LS_FATAL
)

type Logstream uint8
type LogLevel uint8

func (l Logstream) ToString() string {
	return [...]string{"orders", "auth", "webhooks", "merchants", "fatal"}[l]
}

func (l LogLevel) ToString() string {
	return [...]string{"ERROR", "FATAL", "INFO", "DEBUG"}[l]
}
