package model

import "strconv"

func CleLocation(entiteType string, entiteID int) string {
	return entiteType + "_" + strconv.Itoa(entiteID)
}
