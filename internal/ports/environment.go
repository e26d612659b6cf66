package ports

type Environment interface {
	Lookup(key string) (string, bool)
}
