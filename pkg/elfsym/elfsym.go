// Package elfsym reads dynamic-linking information from ELF shared objects.
//
// The package answers three questions about a file: which function symbols
// it exports, which symbol names it imports, and which libraries its dynamic
// section declares as NEEDED. All answers come from the standard debug/elf
// parser; no external tools are invoked.
//
// Nothing is cached between calls. Every method opens the file, reads the
// dynamic symbol table or dynamic section, and closes it again, so results
// always reflect the current filesystem state.
package elfsym

import (
	"debug/elf"
	"errors"
	"fmt"
)

// Inspector reads dynamic symbol information from files on disk.
type Inspector interface {
	// ExportedFunctions returns the names of function symbols the file
	// defines for other modules to call.
	ExportedFunctions(path string) ([]string, error)
	// ImportedNames returns the undefined symbol names the file expects
	// its dependencies to satisfy at load time.
	ImportedNames(path string) ([]string, error)
	// Needed returns the DT_NEEDED sonames of the file's dynamic section,
	// in listing order.
	Needed(path string) ([]string, error)
}

// FileInspector implements Inspector with the standard debug/elf parser.
//
// A stripped file or one without a dynamic symbol table yields empty lists
// rather than an error: zero and "unknown" are deliberately the same answer,
// and callers surface that ambiguity in their own warnings.
type FileInspector struct{}

// ExportedFunctions returns the defined, global or weak, function-typed
// dynamic symbols of the file at path.
func (FileInspector) ExportedFunctions(path string) ([]string, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	syms, err := f.DynamicSymbols()
	if errors.Is(err, elf.ErrNoSymbols) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dynamic symbols of %s: %w", path, err)
	}

	var names []string
	for _, sym := range syms {
		if isExportedFunction(sym) {
			names = append(names, sym.Name)
		}
	}
	return names, nil
}

// ImportedNames returns every undefined dynamic symbol name of the file at
// path, including weak references and data symbols.
func (FileInspector) ImportedNames(path string) ([]string, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	syms, err := f.DynamicSymbols()
	if errors.Is(err, elf.ErrNoSymbols) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dynamic symbols of %s: %w", path, err)
	}

	var names []string
	for _, sym := range syms {
		if sym.Section == elf.SHN_UNDEF && sym.Name != "" {
			names = append(names, sym.Name)
		}
	}
	return names, nil
}

// Needed returns the sonames the file's dynamic section declares as NEEDED.
// A file without a dynamic section has no dependencies and yields an empty
// list.
func (FileInspector) Needed(path string) ([]string, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	libs, err := f.ImportedLibraries()
	if err != nil {
		return nil, fmt.Errorf("needed entries of %s: %w", path, err)
	}
	return libs, nil
}

// isExportedFunction reports whether sym is a defined function another
// module could call: function-typed, global or weak binding, non-empty name,
// and backed by a real section.
func isExportedFunction(sym elf.Symbol) bool {
	if sym.Section == elf.SHN_UNDEF || sym.Name == "" {
		return false
	}
	if elf.ST_TYPE(sym.Info) != elf.STT_FUNC {
		return false
	}
	bind := elf.ST_BIND(sym.Info)
	return bind == elf.STB_GLOBAL || bind == elf.STB_WEAK
}

// CalledCount estimates how many functions the caller uses from the callee:
// the size of the set intersection between the caller's imported names and
// the callee's exported functions. Both lists are read fresh on every call.
//
// The estimate is a symbol-name heuristic, not a call-graph analysis; a name
// the caller imports may in practice be satisfied by a different library.
func CalledCount(ins Inspector, callerPath, calleePath string) (int, error) {
	imports, err := ins.ImportedNames(callerPath)
	if err != nil {
		return 0, err
	}
	exports, err := ins.ExportedFunctions(calleePath)
	if err != nil {
		return 0, err
	}
	return Intersect(imports, exports), nil
}

// Intersect counts the distinct names present in both lists. Duplicates
// within either list count once.
func Intersect(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, name := range a {
		set[name] = true
	}
	n := 0
	for _, name := range b {
		if set[name] {
			n++
			set[name] = false
		}
	}
	return n
}
