package domain

type Item struct {
	Title string
	Note  string
}

func (i Item) Key() string {
	return NormalizeItemKey(i.Title)
}
