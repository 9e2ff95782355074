package outfit

// User-facing texts shown by the two flows.
const (
	SubmitLabel      = "生成穿搭"
	SubmitBusyLabel  = "生成中…"
	NoOutfit         = "暂无建议"
	NoRecommendation = "暂时无法获取建议，请稍后再试。"
	RequestFailed    = "请求失败，请稍后重试。"
	CheckInput       = "请检查输入后再试一次。"
	NetworkFailure   = "网络连接异常，请稍后重试。"
	PlaceholderIntro = "输入天气信息，即可获得贴心的穿搭建议。"
	EmptySummary     = "—"

	ForecastUnsupported   = "当前浏览器不支持定位功能，请使用表单获取建议。"
	ForecastLocating      = "正在定位…"
	ForecastRelocating    = "重新定位中…"
	ForecastFetching      = "正在获取 7 天天气与穿搭建议…"
	ForecastDenied        = "定位被拒绝，无法自动获取天气。"
	ForecastLocateFailed  = "定位失败，请稍后再试。"
	ForecastUnavailable   = "天气服务暂时不可用，请稍后再试。"
	ForecastFetchFailed   = "获取天气数据失败，请稍后重试。"
	ForecastEmpty         = "暂无可用的预报信息。"
	ForecastReady         = "已基于你的位置生成未来 7 天的穿搭建议。"
	ForecastReadyTimezone = "已基于你的位置（%s）生成未来 7 天的穿搭建议。"
	ForecastNoOutfit      = "暂无穿搭建议，请稍后再试。"

	DatePending     = "日期待定"
	WindLabel       = "最大风速"
	AccessoryLabel  = "搭配："
	TipLabel        = "提示："
	AccessorySep    = "、"
	TipSep          = "；"
	TemperatureUnit = "°C"
	WindUnit        = " m/s"
)
