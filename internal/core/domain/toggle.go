package domain

// ToggleAction est la décision pure d'un toggle (follow/like) : on lit
// l'appartenance courante et on inverse. Séparer la décision de l'application
// permet de la tester sans store.
type ToggleAction int

const (
	ToggleAdd ToggleAction = iota
	ToggleRemove
)

// DecideToggle inverse l'état d'appartenance courant.
func DecideToggle(members []string, candidate string) ToggleAction {
	if Contains(members, candidate) {
		return ToggleRemove
	}
	return ToggleAdd
}

// Contains teste l'appartenance à un ensemble représenté en slice.
func Contains(set []string, id string) bool {
	for _, m := range set {
		if m == id {
			return true
		}
	}
	return false
}

// Without retourne l'ensemble privé d'un élément, en conservant l'ordre.
func Without(set []string, id string) []string {
	out := make([]string, 0, len(set))
	for _, m := range set {
		if m != id {
			out = append(out, m)
		}
	}
	return out
}
