package keyword

import "strings"

// aliases maps accent-free spellings typed at a keyboard to the stored form.
var aliases = map[string]string{
	"ficcao cientifica": "ficção científica",
}

// Normalize trims user input and applies known spelling aliases.
func Normalize(input string) string {
	k := strings.TrimSpace(input)
	if alias, ok := aliases[k]; ok {
		return alias
	}
	return k
}
