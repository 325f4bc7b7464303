package statistics

import (
	"context"
	"testing"

	"github.com/staxpay/gateway/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFilters_DropsInapplicableFilters(t *testing.T) {
	req := &PaymentStatisticRequest{
		Filters: []*types.CommonFilter{
			{Field: "currency", Operator: types.CommonFilterOperatorEq, Values: []any{"USDC"}},
			{Field: "has_payer", Values: []any{"true"}},
			{Field: "status", Operator: types.CommonFilterOperatorEq, Values: []any{"confirmed"}},
		},
	}

	// has_payer only applies to daily_payment_count, so the volume query
	// must not see it. Unknown fields like status pass through untouched.
	volume := req.GetFilters(StatisticTypeDailyVolume)
	require.Len(t, volume.Filters, 2)
	assert.Equal(t, "currency", volume.Filters[0].Field)
	assert.Equal(t, "status", volume.Filters[1].Field)

	count := req.GetFilters(StatisticTypeDailyPaymentCount)
	assert.Len(t, count.Filters, 3)
}

func TestGetFilters_EmptyRequest(t *testing.T) {
	var nilReq *PaymentStatisticRequest
	assert.Nil(t, nilReq.GetFilters(StatisticTypeDailyVolume))

	empty := &PaymentStatisticRequest{MerchantID: "m-1"}
	assert.Same(t, empty, empty.GetFilters(StatisticTypeDailyVolume))
}

func TestGetPaymentStatistic_RejectsUnknownDataItem(t *testing.T) {
	svc := New(nil)
	_, err := svc.GetPaymentStatistic(context.Background(), &PaymentStatisticRequest{
		MerchantID: "m-1",
		DataItems:  []*PaymentStatisticDataItem{{ID: StatisticType("daily_teleport_count")}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid data item id")
}

func TestGetPaymentStatistic_SkipsGatedDataItems(t *testing.T) {
	// has_payer cannot scope the raw total_volume query, so the item is
	// answered with nil instead of running against the database.
	svc := New(nil)
	res, err := svc.GetPaymentStatistic(context.Background(), &PaymentStatisticRequest{
		MerchantID: "m-1",
		Filters:    []*types.CommonFilter{{Field: "has_payer", Values: []any{"true"}}},
		DataItems:  []*PaymentStatisticDataItem{{ID: StatisticTypeTotalVolume}},
	})
	require.NoError(t, err)
	require.Contains(t, res.DataItems, StatisticTypeTotalVolume)
	assert.Nil(t, res.DataItems[StatisticTypeTotalVolume])
}
