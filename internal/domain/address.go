package domain

import (
	"errors"
	"strings"
)

// ErrInvalidAddress возвращается, если часть адреса не может быть закодирована без потерь
var ErrInvalidAddress = errors.New("domain: invalid address component")

// Префиксы частей адреса в канонической строке
const (
	addrCityPrefix     = "г. "
	addrStreetPrefix   = "ул. "
	addrBuildingPrefix = "д. "
	addrEntrancePrefix = "подъезд "
	addrFloorPrefix    = "этаж "
	addrSeparator      = ", "
)

// Address структурированный адрес клиента
// В строку превращается только на границе с API (Encode / ParseAddress)
type Address struct {
	City     string `json:"city"`
	Street   string `json:"street"`
	Building string `json:"building"`
	Entrance string `json:"entrance"`
	Floor    string `json:"floor"`
}

// IsZero возвращает true для пустого адреса
func (a Address) IsZero() bool {
	return a == Address{}
}

// Validate проверяет, что адрес переживет Encode -> ParseAddress без потерь
func (a Address) Validate() error {
	for _, part := range []string{a.City, a.Street, a.Building, a.Entrance, a.Floor} {
		if strings.Contains(part, ",") {
			return ErrInvalidAddress
		}
		if part != strings.TrimSpace(part) {
			return ErrInvalidAddress
		}
	}
	return nil
}

// Encode собирает каноническую строку адреса, пустые части пропускаются
// Пример: "г. Казань, ул. Баумана, д. 12, подъезд 2, этаж 5"
func (a Address) Encode() string {
	parts := make([]string, 0, 5)
	add := func(prefix, value string) {
		if value != "" {
			parts = append(parts, prefix+value)
		}
	}
	add(addrCityPrefix, a.City)
	add(addrStreetPrefix, a.Street)
	add(addrBuildingPrefix, a.Building)
	add(addrEntrancePrefix, a.Entrance)
	add(addrFloorPrefix, a.Floor)
	return strings.Join(parts, addrSeparator)
}

// String реализует fmt.Stringer
func (a Address) String() string {
	return a.Encode()
}

// ParseAddress разбирает каноническую строку адреса
// Для любого валидного a: ParseAddress(a.Encode()) == a
// Части без известного префикса (старые записи со свободным текстом) попадают в Street
func ParseAddress(s string) Address {
	var (
		a       Address
		unknown []string
	)
	for _, raw := range strings.Split(s, ",") {
		part := strings.TrimSpace(raw)
		if part == "" {
			continue
		}
		switch {
		case strings.HasPrefix(part, addrCityPrefix) && a.City == "":
			a.City = strings.TrimPrefix(part, addrCityPrefix)
		case strings.HasPrefix(part, addrStreetPrefix) && a.Street == "":
			a.Street = strings.TrimPrefix(part, addrStreetPrefix)
		case strings.HasPrefix(part, addrBuildingPrefix) && a.Building == "":
			a.Building = strings.TrimPrefix(part, addrBuildingPrefix)
		case strings.HasPrefix(part, addrEntrancePrefix) && a.Entrance == "":
			a.Entrance = strings.TrimPrefix(part, addrEntrancePrefix)
		case strings.HasPrefix(part, addrFloorPrefix) && a.Floor == "":
			a.Floor = strings.TrimPrefix(part, addrFloorPrefix)
		default:
			unknown = append(unknown, part)
		}
	}
	if len(unknown) > 0 {
		if a.Street != "" {
			unknown = append([]string{a.Street}, unknown...)
		}
		a.Street = strings.Join(unknown, addrSeparator)
	}
	return a
}
