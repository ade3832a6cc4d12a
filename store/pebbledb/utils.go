package pebbledb

func truncate(str string, length int) string {
	if len(str) > length {
		return str[:length]
	}

	return str
}
