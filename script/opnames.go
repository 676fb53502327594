package script

import "github.com/macropower/vtree/ops"

var opByName = map[string]ops.Op{
	"create_null":   ops.CreateNull,
	"create_bool":   ops.CreateBool,
	"create_int":    ops.CreateInt,
	"create_float":  ops.CreateFloat,
	"create_string": ops.CreateString,
	"create_seq":    ops.CreateSequence,
	"create_map":    ops.CreateMapping,
	"insert":        ops.Insert,
	"replace":       ops.Replace,
	"append":        ops.Append,
	"assoc":         ops.Assoc,
	"disassoc":      ops.Disassoc,
	"keys":          ops.Keys,
	"values":        ops.Values,
	"items":         ops.Items,
	"contains":      ops.Contains,
	"concat":        ops.Concat,
	"reverse":       ops.Reverse,
	"merge":         ops.Merge,
	"unique":        ops.Unique,
	"sort":          ops.Sort,
	"set":           ops.Set,
	"get":           ops.Get,
	"get_at":        ops.GetAt,
	"set_at":        ops.SetAt,
	"get_at_path":   ops.GetAtPath,
	"set_at_path":   ops.SetAtPath,
	"filter":        ops.Filter,
	"map":           ops.Map,
	"map_filter":    ops.MapFilter,
	"reduce":        ops.Reduce,
	"parse":         ops.Parse,
	"emit":          ops.Emit,
}

var flagByName = map[string]ops.Flags{
	"no_checks":        ops.NoChecks,
	"dont_internalize": ops.DontInternalize,
	"map_item_count":   ops.MapItemCount,
	"parallel":         ops.Parallel,
	"flatten_keys":     ops.FlattenKeys,
	"block_fn":         ops.BlockFn,
}

// OpNames returns every step Op name this package recognizes, for
// generating completions or documentation.
func OpNames() []string {
	names := make([]string, 0, len(opByName))
	for name := range opByName {
		names = append(names, name)
	}

	return names
}

// FlagNames returns every step Flags entry this package recognizes.
func FlagNames() []string {
	names := make([]string, 0, len(flagByName))
	for name := range flagByName {
		names = append(names, name)
	}

	return names
}

func opFromName(name string) (ops.Op, error) {
	op, ok := opByName[name]
	if !ok {
		return ops.OpInvalid, &unknownNameError{kind: "op", name: name}
	}

	return op, nil
}

func flagsFromNames(names []string) (ops.Flags, error) {
	var flags ops.Flags

	for _, name := range names {
		f, ok := flagByName[name]
		if !ok {
			return 0, &unknownNameError{kind: "flag", name: name}
		}

		flags |= f
	}

	return flags, nil
}
