package shared

// Варианты сортировки ленты события
type SortOption string

const (
	SortUploadedNew SortOption = "uploaded_new"
	SortUploadedOld SortOption = "uploaded_old"
	SortNameAZ      SortOption = "name_az"
	SortNameZA      SortOption = "name_za"
	SortRandom      SortOption = "random"
	DefaultSort     SortOption = SortUploadedNew
)

var validSorts = map[SortOption]struct{}{
	SortUploadedNew: {},
	SortUploadedOld: {},
	SortNameAZ:      {},
	SortNameZA:      {},
	SortRandom:      {},
}

// NormalizeSort приводит параметр запроса к валидному варианту
func NormalizeSort(param string) SortOption {
	sort := SortOption(param)
	if _, ok := validSorts[sort]; !ok {
		return DefaultSort
	}
	return sort
}
