package diag

// Severity ранжирует диагностики; сравнения (>=) опираются на порядок
// констант, поэтому новые уровни добавляются только в конец.
type Severity uint8

const (
	// SevInfo — заметки, не влияющие на exit code.
	SevInfo Severity = iota
	// SevWarning — замечания линтов; могут стать ошибками через
	// warnings-as-errors.
	SevWarning
	// SevError — ошибки лексера/парсера и I/O.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
