package sales

import "context"

// SalesRepository reads report rows from the point-of-sale database. All
// methods are read-only.
type SalesRepository interface {
	// Daily loyalty-identifier capture per seller, ordered by date DESC, seller ASC.
	GetClubDaily(ctx context.Context, filter Filter) ([]DailyRecord, error)

	// Daily non-buffet items per sale per seller, same ordering.
	GetSellerItemsDaily(ctx context.Context, filter Filter) ([]DailyRecord, error)

	// Non-buffet item sales per (item, seller), ordered by item, seller.
	GetItemSales(ctx context.Context, filter Filter) ([]ItemSellerSales, error)

	// ReadSnapshot runs fn so that every query issued with the ctx it receives
	// sees the same database snapshot.
	ReadSnapshot(ctx context.Context, fn func(ctx context.Context) error) error
}
