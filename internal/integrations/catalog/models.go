package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// DefaultLanguage язык, используемый для названий услуг по умолчанию
const DefaultLanguage = "ru"

// Salon модель салона из каталога
type Salon struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ManagerIDs []int64 `json:"manager_ids"`
}

// Service модель услуги из каталога
type Service struct {
	ID              int64       `json:"id"`
	Name            ServiceName `json:"name"`
	Price           *float64    `json:"price,omitempty"`
	DurationMinutes int         `json:"duration"`
}

// Master модель мастера из каталога
type Master struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// ServiceName название услуги: либо переводы по языкам, либо строка из старых данных
type ServiceName struct {
	Plain     string
	Localized map[string]string
}

// UnmarshalJSON принимает как строку, так и объект {"ru": "...", "en": "..."}
func (n *ServiceName) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ServiceName{}
		return nil
	}

	if data[0] == '"' {
		var plain string
		if err := json.Unmarshal(data, &plain); err != nil {
			return err
		}
		*n = ServiceName{Plain: plain}
		return nil
	}

	var localized map[string]string
	if err := json.Unmarshal(data, &localized); err != nil {
		return fmt.Errorf("service name must be a string or an object: %w", err)
	}
	*n = ServiceName{Localized: localized}
	return nil
}

// MarshalJSON сохраняет исходную форму (нужно для кэша)
func (n ServiceName) MarshalJSON() ([]byte, error) {
	if n.Localized != nil {
		return json.Marshal(n.Localized)
	}
	return json.Marshal(n.Plain)
}

// Resolve выбирает строку для отображения
// Порядок: запрошенный язык, язык по умолчанию, первый непустой перевод по алфавиту, строка
func (n ServiceName) Resolve(lang string) string {
	if len(n.Localized) == 0 {
		return n.Plain
	}
	if v := n.Localized[lang]; v != "" {
		return v
	}
	if v := n.Localized[DefaultLanguage]; v != "" {
		return v
	}

	keys := make([]string, 0, len(n.Localized))
	for k := range n.Localized {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := n.Localized[k]; v != "" {
			return v
		}
	}
	return n.Plain
}
