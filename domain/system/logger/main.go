//go:generate mockgen -source=$GOFILE -destination=${GOFILE}_mock.go -package=$GOPACKAGE

package logger

// ILogger is the logging sink handed to repositories at construction time.
type ILogger interface {
	Info(msg string)
}
