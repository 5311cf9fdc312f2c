package api

import "fmt"

// User-facing error messages
const (
	MsgMissingAPIKey          = "Google Maps APIキーが設定されていません"
	MsgStationNameRequired    = "駅名が必要です"
	MsgTwoStationsRequired    = "2つ以上の駅が必要です"
	MsgCoordinatesRequired    = "座標が必要です"
	MsgInvalidCoordinates     = "駅の座標が不正です"
	MsgTwoParticipantsNeeded  = "2人以上の参加者の駅名を入力してください"
	MsgTooManyParticipants    = "参加者は5人までです"
	MsgMalformedRequest       = "リクエストの形式が正しくありません"
	MsgGeocodeFailed          = "駅の検索中にエラーが発生しました"
	MsgCenterSearchFailed     = "中心地点の駅検索中にエラーが発生しました"
	MsgRestaurantSearchFailed = "飲食店の検索中にエラーが発生しました"
	MsgMeetingPointFailed     = "中間地点の検索中にエラーが発生しました"
	MsgNotFound               = "Not Found"
	MsgMethodNotAllowed       = "Method Not Allowed"
	MsgInternalError          = "Internal Server Error"
)

func StationNotFound(name string) string {
	return fmt.Sprintf("駅「%s」が見つかりませんでした", name)
}
