package port

// Fields - структурированные поля для записи в лог
type Fields map[string]interface{}

// LoggerPort - контракт логгера, которым пользуются use case'ы и адаптеры
type LoggerPort interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)

	// WithFields возвращает логгер с добавленными полями
	WithFields(fields Fields) LoggerPort
}
