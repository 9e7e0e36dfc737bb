package comissao

import (
	"fmt"
	"time"
)

const layoutMes = "2006-01"

// ValidarMes aceita apenas "AAAA-MM".
func ValidarMes(mes string) error {
	if len(mes) != len(layoutMes) {
		return fmt.Errorf("%w: %q", ErrMesInvalido, mes)
	}
	if _, err := time.Parse(layoutMes, mes); err != nil {
		return fmt.Errorf("%w: %q", ErrMesInvalido, mes)
	}
	return nil
}

// PrimeiroDia devolve 00:00 UTC do dia 1 do mês.
func PrimeiroDia(mes string) (time.Time, error) {
	if err := ValidarMes(mes); err != nil {
		return time.Time{}, err
	}
	t, _ := time.Parse(layoutMes, mes)
	return t, nil
}

func ProximoMes(mes string) (string, error) {
	t, err := PrimeiroDia(mes)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 1, 0).Format(layoutMes), nil
}

func MesDe(t time.Time) string {
	return t.Format(layoutMes)
}
