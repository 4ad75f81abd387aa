package browse

import (
	"filetag-api/internal/application/ports"
)

func ToResponseItem(it ports.BrowseItem) Item {
	var i = Item{
		OriginalName:  it.OriginalName,
		Destination:   it.Destination,
		CreatedDate:   it.CreatedDate,
		ContentLength: it.ContentLength,
	}

	return i
}

func ToResponseItems(its []ports.BrowseItem) Items {
	items := make(Items, len(its))
	for idx, it := range its {
		items[idx] = ToResponseItem(it)
	}

	return items
}
