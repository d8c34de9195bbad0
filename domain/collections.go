package domain

const (
	CollectionCatalogArtist = "catalog_artist"
)
const (
	CollectionCatalogContent = "catalog_content"
)

// CollectionCatalogCounters 存放各集合的插入序号
const (
	CollectionCatalogCounters = "catalog_counters"
)
