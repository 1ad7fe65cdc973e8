package querycache

// Mutation names a write against the backend.
type Mutation string

const (
	MutationOrderCreate     Mutation = "order.create"
	MutationOrderUpdate     Mutation = "order.update"
	MutationOrderDelete     Mutation = "order.delete"
	MutationDeliveryRequest Mutation = "delivery.request"
	MutationDeliveryCancel  Mutation = "delivery.cancel"
	MutationOrderExternal   Mutation = "order.external"
	MutationProductCreate   Mutation = "product.create"
	MutationProductUpdate   Mutation = "product.update"
	MutationProductDelete   Mutation = "product.delete"
	MutationShopCreate      Mutation = "shop.create"
	MutationShopUpdate      Mutation = "shop.update"
	MutationLogout          Mutation = "auth.logout"
)

// Scope carries the identifiers a rule needs to build concrete keys.
type Scope struct {
	ShopID    string
	OrderID   string
	ProductID string
	UserID    string
}

type keyFunc func(Scope) string

func shopOrders(s Scope) string   { return ifSet(s.ShopID, ShopOrdersKey) }
func order(s Scope) string        { return ifSet(s.OrderID, OrderKey) }
func shopProducts(s Scope) string { return ifSet(s.ShopID, ShopProductsKey) }
func product(s Scope) string      { return ifSet(s.ProductID, ProductKey) }
func userShops(s Scope) string    { return ifSet(s.UserID, UserShopsKey) }

func ifSet(id string, key func(string) string) string {
	if id == "" {
		return ""
	}
	return key(id)
}

// DefaultRules is the invalidation table: mutation X invalidates queries [a, b].
var DefaultRules = map[Mutation][]keyFunc{
	MutationOrderCreate:     {shopOrders},
	MutationOrderUpdate:     {shopOrders, order},
	MutationOrderDelete:     {shopOrders, order},
	MutationDeliveryRequest: {shopOrders, order},
	MutationDeliveryCancel:  {shopOrders, order},
	MutationOrderExternal:   {shopOrders, order},
	MutationProductCreate:   {shopProducts},
	MutationProductUpdate:   {shopProducts, product},
	MutationProductDelete:   {shopProducts, product},
	MutationShopCreate:      {userShops},
	MutationShopUpdate:      {userShops},
	MutationLogout:          {userShops},
}

// Keys resolves the concrete query keys a mutation invalidates for scope.
func Keys(rules map[Mutation][]keyFunc, m Mutation, scope Scope) []string {
	var keys []string
	for _, fn := range rules[m] {
		if k := fn(scope); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
