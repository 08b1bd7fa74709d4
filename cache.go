package earlyrepair

import (
	"encoding/json"
	"os"
)

// cacheFile is the exact on-disk JSON shape of a grammar cache (§6):
// a right-linear grammar, its start nonterminal, and the alphabet it
// was learned over. Field order and names are part of the format —
// two engines on different machines must produce byte-identical cache
// files from the same learned grammar.
type cacheFile struct {
	Grammar  Grammar  `json:"grammar"`
	StartSym string   `json:"start_sym"`
	Alphabet []string `json:"alphabet"`
}

// SaveGrammarCache writes grammar/start/alphabet to path as indented
// JSON, overwriting whatever was there.
func SaveGrammarCache(path string, grammar Grammar, start string, alphabet []string) error {
	cf := cacheFile{Grammar: grammar, StartSym: start, Alphabet: alphabet}
	data, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadGrammarCache reads a grammar cache written by SaveGrammarCache
// and checks the string-only invariant from §6: every production is a
// list of strings (guaranteed by the JSON shape itself), the grammar is
// non-empty, the start symbol is one of the grammar's own nonterminals,
// the alphabet is non-empty, every grammar key is a bracketed
// nonterminal, and every nonterminal a production references is defined.
// A cache failing any of these checks is reported as
// CacheCorruptionError rather than silently accepted (§7).
func LoadGrammarCache(path string) (Grammar, string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", nil, err
	}

	var cf cacheFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, "", nil, &CacheCorruptionError{Path: path, Reason: "not valid JSON: " + err.Error()}
	}

	if len(cf.Grammar) == 0 {
		return nil, "", nil, &CacheCorruptionError{Path: path, Reason: "grammar is empty"}
	}
	if _, ok := cf.Grammar[cf.StartSym]; !ok {
		return nil, "", nil, &CacheCorruptionError{Path: path, Reason: "start_sym is not a nonterminal of grammar"}
	}
	if len(cf.Alphabet) == 0 {
		return nil, "", nil, &CacheCorruptionError{Path: path, Reason: "alphabet is empty"}
	}
	for nt, prods := range cf.Grammar {
		if !IsNonterminal(nt) {
			return nil, "", nil, &CacheCorruptionError{Path: path, Reason: "grammar key " + nt + " is not a bracketed nonterminal"}
		}
		for _, p := range prods {
			for _, sym := range p {
				if IsNonterminal(sym) {
					if _, ok := cf.Grammar[sym]; !ok {
						return nil, "", nil, &CacheCorruptionError{Path: path, Reason: "production references unknown nonterminal " + sym}
					}
				}
			}
		}
	}

	return cf.Grammar, cf.StartSym, cf.Alphabet, nil
}
