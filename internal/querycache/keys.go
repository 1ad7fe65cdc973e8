package querycache

import (
	"fmt"
	"strconv"
)

// Query keys. Every cached read is stored under exactly one of these.
func ShopOrdersKey(shopID string) string     { return fmt.Sprintf("shop:%s:orders", shopID) }
func OrderKey(orderID string) string         { return fmt.Sprintf("order:%s", orderID) }
func ShopProductsKey(shopID string) string   { return fmt.Sprintf("shop:%s:products", shopID) }
func ProductKey(productID string) string     { return fmt.Sprintf("product:%s", productID) }
func UserShopsKey(userID string) string      { return fmt.Sprintf("user:%s:shops", userID) }
func CitiesKey() string                      { return "pathao:cities" }
func ZonesKey(cityID int64) string           { return "pathao:city:" + strconv.FormatInt(cityID, 10) + ":zones" }
func AreasKey(zoneID int64) string           { return "pathao:zone:" + strconv.FormatInt(zoneID, 10) + ":areas" }
