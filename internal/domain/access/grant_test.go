package access_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/gestion-pro/internal/domain/access"
)

// Interpretación total de valores heterogéneos, sin pánico posible.
func TestIsGranted_ValoresOtorgados(t *testing.T) {
	granted := []any{
		true,
		1,
		int32(1),
		int64(1),
		float32(1),
		float64(1),
		"1",
		"true",
		"TRUE",
		"True",
		json.Number("1"),
	}
	for _, v := range granted {
		assert.True(t, access.IsGranted(v), "valor: %#v", v)
	}
}

func TestIsGranted_ValoresNoOtorgados(t *testing.T) {
	denied := []any{
		false,
		0,
		2,
		-1,
		float64(1.5),
		"0",
		"false",
		"yes",
		"si",
		"",
		nil,
		json.Number("0"),
		[]string{"true"},
		map[string]any{"granted": true},
		struct{}{},
	}
	for _, v := range denied {
		assert.False(t, access.IsGranted(v), "valor: %#v", v)
	}
}
