package domain

// Document - произвольный документ коллекции
type Document map[string]any

// StripAbsent убирает ключи с nil значениями, рекурсивно для вложенных map и слайсов
func StripAbsent(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		out[k] = stripValue(v)
	}
	return out
}

func stripValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return StripAbsent(t)
	case Document:
		return Document(StripAbsent(t))
	case []any:
		items := make([]any, len(t))
		for i, item := range t {
			items[i] = stripValue(item)
		}
		return items
	}
	return v
}
