package access

import (
	"encoding/json"
	"strings"
)

// GrantMap es el mapa de módulos de un tenant tal como llega del almacén:
// código libre → valor heterogéneo (bool, string o número según la época en
// que se escribió la fila). Solo lectura para el motor.
type GrantMap map[string]any

// IsGranted interpreta un valor de grant heterogéneo como booleano.
// Reconoce true, 1 (en cualquier ancho numérico) y "true"/"1" sin distinguir
// mayúsculas. Todo lo demás, incluidos tipos desconocidos y nil, es
// no-otorgado: fail-closed, sin camino de error.
func IsGranted(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return strings.EqualFold(x, "true") || x == "1"
	case int:
		return x == 1
	case int32:
		return x == 1
	case int64:
		return x == 1
	case float32:
		return x == 1
	case float64:
		return x == 1
	case json.Number:
		// encoding/json con UseNumber; los JSONB numéricos llegan así.
		return x.String() == "1"
	default:
		return false
	}
}
