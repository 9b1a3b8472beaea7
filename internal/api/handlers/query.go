package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ParseIDList разбирает список ID через запятую: "1,2,3"
func ParseIDList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty id list")
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Language возвращает язык из query параметра lang или заголовка Accept-Language
// Пустая строка означает язык по умолчанию
func Language(r *http.Request) string {
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		return strings.ToLower(lang)
	}

	header := r.Header.Get("Accept-Language")
	if header == "" {
		return ""
	}
	first := strings.Split(header, ",")[0]
	first = strings.Split(first, ";")[0]
	first = strings.Split(strings.TrimSpace(first), "-")[0]
	return strings.ToLower(first)
}
