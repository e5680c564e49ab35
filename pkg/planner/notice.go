package planner

import "time"

type NoticeKind string

const (
	NoticeInputIncomplete   NoticeKind = "InputIncomplete"
	NoticeNoRouteFound      NoticeKind = "NoRouteFound"
	NoticeSearchFailed      NoticeKind = "SearchFailed"
	NoticeDetailFetchFailed NoticeKind = "DetailFetchFailed"
)

var noticeMessages = map[NoticeKind]string{
	NoticeInputIncomplete:   "출발지와 도착지를 모두 설정해주세요!",
	NoticeNoRouteFound:      "대중교통 경로를 찾을 수 없습니다.",
	NoticeSearchFailed:      "경로 검색 중 오류가 발생했습니다.",
	NoticeDetailFetchFailed: "상세 경로를 불러오는 중 문제가 발생했습니다.",
}

// Notice is a user facing message raised by a session transition.
type Notice struct {
	Kind      NoticeKind `json:"kind" groups:"basic"`
	Message   string     `json:"message" groups:"basic"`
	Timestamp time.Time  `json:"timestamp" groups:"basic"`
}

func newNotice(kind NoticeKind) Notice {
	return Notice{
		Kind:      kind,
		Message:   noticeMessages[kind],
		Timestamp: time.Now(),
	}
}
