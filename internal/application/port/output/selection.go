package output

import "fixbridge/internal/domain/entity"

type SelectionSource interface {
	Snapshot() []entity.SelectionItem
}
