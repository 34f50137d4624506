package purchase

import "github.com/google/uuid"

// isID indica si id tiene forma de UUID canónico (36 caracteres). Los repositorios guardan
// documentos, pagos y productos con ids UUID; uno mal formado no puede existir.
func isID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func areIDs(ids ...string) bool {
	for _, id := range ids {
		if !isID(id) {
			return false
		}
	}
	return true
}
