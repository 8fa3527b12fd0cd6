package assets

// Loader decodes one kind of asset file.
type Loader[T any] interface {
	Load(path string) (T, error)
}
