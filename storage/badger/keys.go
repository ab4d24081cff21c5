package badger

import (
	"fmt"

	"github.com/rishika0212/termalign/core"
)

// Key prefixes for different data types
const (
	sourceConceptPrefix = "srccon"
	translationPrefix   = "tracache"
	mappingPrefix       = "maprec"
	aliasEntryPrefix    = "alsidx"
	aliasMetaPrefix     = "alsmeta"
	embeddingPrefix     = "embvec"
)

// makeConceptKey generates a key for a source concept by (system, code).
func makeConceptKey(system, code string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", sourceConceptPrefix, system, code))
}

// makeConceptSystemPrefix generates the iteration prefix for all concepts of
// a coding system.
func makeConceptSystemPrefix(system string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", sourceConceptPrefix, system))
}

// makeTranslationKey generates a key for a cached translation by (system, code).
func makeTranslationKey(system, code string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", translationPrefix, system, code))
}

// makeMappingKey generates a key for a mapping record by its identity hash.
func makeMappingKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", mappingPrefix, id))
}

// makeAliasEntryKey generates a key for an alias index entry by (system, code).
func makeAliasEntryKey(system, code string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", aliasEntryPrefix, system, code))
}

// makeAliasSystemPrefix generates the iteration prefix for all alias entries
// of a target system.
func makeAliasSystemPrefix(system string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", aliasEntryPrefix, system))
}

// makeAliasMetaKey generates the key for a system's alias index fingerprint.
func makeAliasMetaKey(system string) []byte {
	return []byte(fmt.Sprintf("%s:%s", aliasMetaPrefix, system))
}

// makeEmbeddingKey generates the key for a system's embedding artifact.
func makeEmbeddingKey(system string) []byte {
	return []byte(fmt.Sprintf("%s:%s", embeddingPrefix, system))
}
