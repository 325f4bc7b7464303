package statistics

import (
	"context"
	"fmt"
	"sync"

	"github.com/staxpay/gateway/pkg/types"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Statistic types exposed to merchants
type StatisticType string

const (
	// Daily counts and volume
	StatisticTypeDailyPaymentCount StatisticType = "daily_payment_count"
	StatisticTypeDailyVolume       StatisticType = "daily_volume"
	StatisticTypeTotalVolume       StatisticType = "total_volume"

	// Settlement latency, seconds from creation to on-chain confirmation
	StatisticTypeDailySettlementSeconds StatisticType = "daily_settlement_seconds"

	// Webhook delivery metrics
	StatisticTypeDailyWebhookSuccessRate StatisticType = "daily_webhook_success_rate"
)

// Filter types supported by certain statistic types
type PaymentStatisticFilterType string

const (
	PaymentStatisticFilterTypeHasPayer PaymentStatisticFilterType = "has_payer"
	PaymentStatisticFilterTypeRefunded PaymentStatisticFilterType = "refunded"
	PaymentStatisticFilterTypeCurrency PaymentStatisticFilterType = "currency"
)

var filterTypes = []PaymentStatisticFilterType{
	PaymentStatisticFilterTypeHasPayer,
	PaymentStatisticFilterTypeRefunded,
	PaymentStatisticFilterTypeCurrency,
}

var validFilters = map[PaymentStatisticFilterType][]StatisticType{
	PaymentStatisticFilterTypeHasPayer: {StatisticTypeDailyPaymentCount},
	PaymentStatisticFilterTypeRefunded: {StatisticTypeDailyPaymentCount, StatisticTypeDailyVolume},
	PaymentStatisticFilterTypeCurrency: {StatisticTypeDailyPaymentCount, StatisticTypeDailyVolume},
}

type PaymentStatisticDataItem struct {
	ID StatisticType `json:"id"`
}

type PaymentStatisticRequest struct {
	MerchantID string                      `json:"-"`
	Filters    []*types.CommonFilter       `json:"filters"`
	DataItems  []*PaymentStatisticDataItem `json:"data_items"`
}

func (f *PaymentStatisticRequest) GetFilters(statisticType StatisticType) *PaymentStatisticRequest {
	if f == nil || len(f.Filters) == 0 {
		return f
	}
	var result PaymentStatisticRequest
	for _, filter := range f.Filters {
		if statisticTypes, ok := validFilters[PaymentStatisticFilterType(filter.Field)]; ok {
			if lo.Contains(statisticTypes, statisticType) {
				result.Filters = append(result.Filters, filter)
			}
		} else {
			result.Filters = append(result.Filters, filter)
		}
	}
	return &result
}

// Build composes a WHERE clause based on provided filters, with custom handling for
// filter fields like has_payer and refunded that do not map to a single column.
func (f *PaymentStatisticRequest) Build(builder clause.Builder) {
	if len(f.Filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	for i, filter := range f.Filters {
		if i > 0 {
			builder.WriteString(" AND ")
		}
		switch filter.Field {
		case string(PaymentStatisticFilterTypeHasPayer):
			if len(filter.Values) > 0 && fmt.Sprint(filter.Values[0]) == "true" {
				builder.WriteString("payer_wallet IS NOT NULL")
			} else {
				builder.WriteString("payer_wallet IS NULL")
			}
		case string(PaymentStatisticFilterTypeRefunded):
			if len(filter.Values) > 0 && fmt.Sprint(filter.Values[0]) == "true" {
				builder.WriteString("EXISTS (SELECT 1 FROM refund WHERE refund.payment_id = payment.id)")
			} else {
				builder.WriteString("NOT EXISTS (SELECT 1 FROM refund WHERE refund.payment_id = payment.id)")
			}
		default:
			filter.Build(builder)
		}
	}
}

type PaymentStatisticResponseDataItem struct {
	Date string `json:"date"`
	// Label carries the currency for volume statistics, empty otherwise.
	Label string `json:"label,omitempty"`
	Value int64  `json:"value"`
	// Volume is a decimal string so large stablecoin sums never lose precision.
	Volume string `json:"volume,omitempty"`
	Value2 int64  `json:"value2,omitempty"`
	Value3 int64  `json:"value3,omitempty"`
}

type PaymentStatisticResponse struct {
	DataItems map[StatisticType][]PaymentStatisticResponseDataItem `json:"data_items"`
}

// Service provides statistics operations
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

// Internal helpers for various stats
func (s *Service) getDailyPaymentCount(ctx context.Context, request *PaymentStatisticRequest) ([]PaymentStatisticResponseDataItem, error) {
	var results []PaymentStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table("payment").
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') as date, count(*) as value").
		Where("merchant_id = ?", request.MerchantID).
		Where(clause.Where{Exprs: []clause.Expression{request.GetFilters(StatisticTypeDailyPaymentCount)}}).
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order("date")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getDailyVolume(ctx context.Context, request *PaymentStatisticRequest) ([]PaymentStatisticResponseDataItem, error) {
	var results []PaymentStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table("payment").
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') as date, currency AS label, count(*) as value, CAST(SUM(amount) AS TEXT) as volume").
		Where("merchant_id = ?", request.MerchantID).
		Where("status = ?", types.PaymentStatusConfirmed).
		Where(clause.Where{Exprs: []clause.Expression{request.GetFilters(StatisticTypeDailyVolume)}}).
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Group("currency").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true})
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getTotalVolume(ctx context.Context, request *PaymentStatisticRequest) ([]PaymentStatisticResponseDataItem, error) {
	var results []PaymentStatisticResponseDataItem
	err := s.db.WithContext(ctx).Raw(`
WITH min_max_dates AS (
    SELECT MIN(DATE(created_at)) as min_date, MAX(DATE(created_at)) as max_date
    FROM payment WHERE merchant_id = ?
),
distinct_dates AS (
    SELECT generate_series(min_date, max_date, '1 day'::interval) as date FROM min_max_dates
),
dates AS (
    SELECT TO_CHAR(date, 'YYYY-MM-DD') as date FROM distinct_dates
),
currencies AS (
    SELECT DISTINCT currency as label FROM payment WHERE merchant_id = ?
),
date_currency_combinations AS (
    SELECT d.date, c.label FROM dates d CROSS JOIN currencies c
),
volume_date AS (
    SELECT dc.date, dc.label, COALESCE(SUM(p.amount), 0) as volume
    FROM date_currency_combinations dc
    LEFT JOIN payment p
      ON TO_CHAR(p.created_at, 'YYYY-MM-DD') = dc.date
     AND p.currency = dc.label
     AND p.merchant_id = ?
     AND p.status = ?
    GROUP BY dc.date, dc.label
)
SELECT d.date as date, d.label as label, CAST(SUM(s.volume) AS TEXT) as volume
FROM volume_date d
LEFT JOIN volume_date s ON s.date <= d.date AND s.label = d.label
GROUP BY d.date, d.label
ORDER BY d.date DESC, d.label ASC
`, request.MerchantID, request.MerchantID, request.MerchantID, types.PaymentStatusConfirmed).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getDailySettlementSeconds(ctx context.Context, request *PaymentStatisticRequest) ([]PaymentStatisticResponseDataItem, error) {
	var results []PaymentStatisticResponseDataItem
	err := s.db.WithContext(ctx).Raw(`
SELECT TO_CHAR(created_at, 'YYYY-MM-DD') as date,
       CAST(ROUND(AVG(settlement_time)) AS BIGINT) as value,
       MAX(settlement_time) as value2,
       COUNT(*) as value3
FROM payment
WHERE merchant_id = ?
  AND status = ?
  AND settlement_time IS NOT NULL
GROUP BY TO_CHAR(created_at, 'YYYY-MM-DD')
ORDER BY date DESC
`, request.MerchantID, types.PaymentStatusConfirmed).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getDailyWebhookSuccessRate(ctx context.Context, request *PaymentStatisticRequest) ([]PaymentStatisticResponseDataItem, error) {
	var results []PaymentStatisticResponseDataItem
	sql := `
WITH terminal_events AS (
  SELECT TO_CHAR(created_at, 'YYYY-MM-DD') as date,
         COUNT(*) FILTER (WHERE status = 'delivered') as delivered,
         COUNT(*) as total
  FROM webhook_event
  WHERE merchant_id = ?
    AND status IN ('delivered', 'failed')
  GROUP BY TO_CHAR(created_at, 'YYYY-MM-DD')
)
SELECT
  date,
  CASE WHEN total = 0 THEN 0
       ELSE CAST(ROUND(LEAST(delivered * 100.0 / total, 100), 2) * 100 AS INTEGER)
  END as value,
  total as value2,
  delivered as value3
FROM terminal_events
ORDER BY date DESC`
	if err := s.db.WithContext(ctx).Raw(sql, request.MerchantID).Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getPaymentStatistic(ctx context.Context, request *PaymentStatisticRequest, dataItem *PaymentStatisticDataItem) ([]PaymentStatisticResponseDataItem, error) {
	switch dataItem.ID {
	case StatisticTypeDailyPaymentCount:
		return s.getDailyPaymentCount(ctx, request)
	case StatisticTypeDailyVolume:
		return s.getDailyVolume(ctx, request)
	case StatisticTypeTotalVolume:
		return s.getTotalVolume(ctx, request)
	case StatisticTypeDailySettlementSeconds:
		return s.getDailySettlementSeconds(ctx, request)
	case StatisticTypeDailyWebhookSuccessRate:
		return s.getDailyWebhookSuccessRate(ctx, request)
	default:
		return nil, fmt.Errorf("invalid data item id: %s", dataItem.ID)
	}
}

func (s *Service) GetPaymentStatistic(ctx context.Context, request *PaymentStatisticRequest) (*PaymentStatisticResponse, error) {
	var wg sync.WaitGroup
	errChan := make(chan error, len(request.DataItems))
	resChan := make(chan *lo.Entry[StatisticType, []PaymentStatisticResponseDataItem], len(request.DataItems))

	for _, item := range request.DataItems {
		wg.Add(1)
		go func(di *PaymentStatisticDataItem) {
			defer wg.Done()
			// check filter applicability
			for _, filter := range request.Filters {
				ft := PaymentStatisticFilterType(filter.Field)
				if lo.Contains(filterTypes, ft) && !lo.Contains(validFilters[ft], di.ID) {
					resChan <- &lo.Entry[StatisticType, []PaymentStatisticResponseDataItem]{Key: di.ID, Value: nil}
					return
				}
			}
			res, err := s.getPaymentStatistic(ctx, request, di)
			if err != nil {
				errChan <- err
				return
			}
			resChan <- &lo.Entry[StatisticType, []PaymentStatisticResponseDataItem]{Key: di.ID, Value: res}
		}(item)
	}

	go func() { wg.Wait(); close(errChan); close(resChan) }()

	results := make(map[StatisticType][]PaymentStatisticResponseDataItem)
	for i := 0; i < len(request.DataItems); i++ {
		select {
		case err := <-errChan:
			if err != nil {
				return nil, err
			}
		case entry := <-resChan:
			results[entry.Key] = entry.Value
		}
	}
	return &PaymentStatisticResponse{DataItems: results}, nil
}
