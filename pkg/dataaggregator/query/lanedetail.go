package query

type LaneDetail struct {
	DetailToken string
}
