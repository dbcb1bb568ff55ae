package profile

// Header names used by the rule tables.
const (
	HeaderUserAgent      = "User-Agent"
	HeaderContentType    = "Content-Type"
	HeaderAccept         = "Accept"
	HeaderAcceptLanguage = "Accept-Language"
	HeaderReferer        = "Referer"
	HeaderRequestedWith  = "X-Requested-With"
	HeaderEmbedError     = "X-UT-Embed-Error"
	HeaderRoute          = "X-UT-Route"
	HeaderMethodOverride = "X-HTTP-Method-Override"
	HeaderWapProfile     = "x-wap-profile"
	HeaderPowSID         = "X-POW-SID"

	HeaderSessionID     = "X-UT-SID"
	HeaderPhishingToken = "X-UT-PHISHING-TOKEN"
	HeaderNucleusID     = "Easw-Session-Data-Nucleus-Id"
)

const (
	webAppUserAgent = "Mozilla/5.0 (Windows NT 6.2; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/29.0.1547.62 Safari/537.36"
	webAppAccept    = "text/html,application/xhtml+xml,application/json,application/xml;q=0.9,image/webp,*/*;q=0.8"
	webAppReferer   = "http://www.easports.com/iframe/fut/?baseShowoffUrl=http%3A%2F%2Fwww.easports.com%2Fuk%2Ffifa%2Ffootball-club%2Fultimate-team%2Fshow-off&guest_app_uri=http%3A%2F%2Fwww.easports.com%2Fuk%2Ffifa%2Ffootball-club%2Fultimate-team&locale=en_GB"
	webAppLanguage  = "en-US,en;q=0.8"

	mobileUserAgent  = "Mozilla/5.0 (Linux; U; Android 4.2.2; de-de; GT-I9195 Build/JDQ39) AppleWebKit/534.30 (KHTML, like Gecko) Version/4.0 Mobile Safari/534.30"
	mobileWapProfile = "http://wap.samsungmobile.com/uaprof/GT-I9195.xml"
	mobileAccept     = "application/json, text/plain, */*; q=0.01"

	contentTypeJSON = "application/json"
)
