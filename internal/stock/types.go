package stock

// Method selects the source of truth for "in stock".
type Method string

const (
	// MethodStockItem reads the raw stock item flag.
	MethodStockItem Method = "stock_item"
	// MethodStockRegistry reads the same data through the registry lookup path.
	MethodStockRegistry Method = "stock_registry"
	// MethodIsAvailable uses the salability flag maintained at product save,
	// which accounts for qty, backorder and website rules.
	MethodIsAvailable Method = "is_available"
	// MethodIsSalable uses per-item salable quantity.
	MethodIsSalable Method = "is_salable"
)

// Valid reports whether m is one of the four supported methods.
func (m Method) Valid() bool {
	switch m {
	case MethodStockItem, MethodStockRegistry, MethodIsAvailable, MethodIsSalable:
		return true
	}
	return false
}
