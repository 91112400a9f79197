package usecase

import "github.com/user/linkrank/internal/entity"

// Aggregate joins relationships to resources. A relationship is an inbound
// call of a resource when its literal href equals the resource URL, so a page
// reached only through a relative href shows no inbound call for that link.
func Aggregate(resources []entity.PageResource, relationships []entity.LinkRelationship) []entity.PageStatistics {
	stats := make([]entity.PageStatistics, 0, len(resources))
	for _, res := range resources {
		calls := []entity.LinkRelationship{}
		for _, rel := range relationships {
			if entity.RawHrefEquals(rel.TargetHref, res.URL) {
				calls = append(calls, rel)
			}
		}
		stats = append(stats, entity.PageStatistics{
			Title:        res.Title,
			InboundCalls: calls,
			CallCount:    len(calls),
		})
	}
	return stats
}
