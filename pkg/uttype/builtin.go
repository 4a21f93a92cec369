// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package uttype

var builtinTypes = []Type{
	// Abstract roots
	{Identifier: Item},
	{Identifier: Content},
	{Identifier: Data, ConformsTo: []string{Item}},
	{Identifier: Audiovisual, ConformsTo: []string{Data, Content}},
	{Identifier: Archive, ConformsTo: []string{Data}},

	// Text
	{Identifier: Text, ConformsTo: []string{Data, Content}},
	{Identifier: PlainText, MIMETypes: []string{"text/plain"}, Extensions: []string{"txt", "text"}, ConformsTo: []string{Text}},
	{Identifier: "public.utf8-plain-text", ConformsTo: []string{PlainText}},
	{Identifier: "public.html", MIMETypes: []string{"text/html"}, Extensions: []string{"html", "htm"}, ConformsTo: []string{Text}},
	{Identifier: "public.xml", MIMETypes: []string{"application/xml", "text/xml"}, Extensions: []string{"xml"}, ConformsTo: []string{Text}},
	{Identifier: "public.json", MIMETypes: []string{"application/json"}, Extensions: []string{"json"}, ConformsTo: []string{Text}},
	{Identifier: "public.comma-separated-values-text", MIMETypes: []string{"text/csv"}, Extensions: []string{"csv"}, ConformsTo: []string{Text}},
	{Identifier: "public.tab-separated-values-text", MIMETypes: []string{"text/tab-separated-values"}, Extensions: []string{"tsv"}, ConformsTo: []string{Text}},
	{Identifier: "public.rtf", MIMETypes: []string{"text/rtf", "application/rtf"}, Extensions: []string{"rtf"}, ConformsTo: []string{Text}},
	{Identifier: "net.daringfireball.markdown", MIMETypes: []string{"text/markdown"}, Extensions: []string{"md", "markdown"}, ConformsTo: []string{PlainText}},
	{Identifier: "public.yaml", MIMETypes: []string{"application/yaml", "text/yaml"}, Extensions: []string{"yaml", "yml"}, ConformsTo: []string{Text}},
	{Identifier: "public.vcard", MIMETypes: []string{"text/vcard", "text/x-vcard"}, Extensions: []string{"vcf", "vcard"}, ConformsTo: []string{Text}},
	{Identifier: "public.calendar-event", MIMETypes: []string{"text/calendar"}, Extensions: []string{"ics"}, ConformsTo: []string{Text}},

	// Images
	{Identifier: Image, ConformsTo: []string{Data, Content}},
	{Identifier: "public.jpeg", MIMETypes: []string{"image/jpeg", "image/jpg"}, Extensions: []string{"jpeg", "jpg", "jpe"}, ConformsTo: []string{Image}},
	{Identifier: "public.png", MIMETypes: []string{"image/png"}, Extensions: []string{"png"}, ConformsTo: []string{Image}},
	{Identifier: "com.compuserve.gif", MIMETypes: []string{"image/gif"}, Extensions: []string{"gif"}, ConformsTo: []string{Image}},
	{Identifier: "public.heic", MIMETypes: []string{"image/heic"}, Extensions: []string{"heic"}, ConformsTo: []string{Image}},
	{Identifier: "public.heif", MIMETypes: []string{"image/heif"}, Extensions: []string{"heif"}, ConformsTo: []string{Image}},
	{Identifier: "org.webmproject.webp", MIMETypes: []string{"image/webp"}, Extensions: []string{"webp"}, ConformsTo: []string{Image}},
	{Identifier: "public.tiff", MIMETypes: []string{"image/tiff"}, Extensions: []string{"tiff", "tif"}, ConformsTo: []string{Image}},
	{Identifier: "com.microsoft.bmp", MIMETypes: []string{"image/bmp"}, Extensions: []string{"bmp"}, ConformsTo: []string{Image}},
	{Identifier: "com.microsoft.ico", MIMETypes: []string{"image/vnd.microsoft.icon", "image/x-icon"}, Extensions: []string{"ico"}, ConformsTo: []string{Image}},
	{Identifier: "public.svg-image", MIMETypes: []string{"image/svg+xml"}, Extensions: []string{"svg"}, ConformsTo: []string{Image, "public.xml"}},
	{Identifier: "public.avif", MIMETypes: []string{"image/avif"}, Extensions: []string{"avif"}, ConformsTo: []string{Image}},

	// Audio
	{Identifier: Audio, ConformsTo: []string{Audiovisual}},
	{Identifier: "public.mp3", MIMETypes: []string{"audio/mpeg", "audio/mp3"}, Extensions: []string{"mp3"}, ConformsTo: []string{Audio}},
	{Identifier: "public.mpeg-4-audio", MIMETypes: []string{"audio/mp4", "audio/x-m4a"}, Extensions: []string{"m4a"}, ConformsTo: []string{Audio}},
	{Identifier: "public.aac-audio", MIMETypes: []string{"audio/aac"}, Extensions: []string{"aac"}, ConformsTo: []string{Audio}},
	{Identifier: "com.microsoft.waveform-audio", MIMETypes: []string{"audio/wav", "audio/x-wav", "audio/vnd.wave"}, Extensions: []string{"wav"}, ConformsTo: []string{Audio}},
	{Identifier: "public.aiff-audio", MIMETypes: []string{"audio/aiff", "audio/x-aiff"}, Extensions: []string{"aiff", "aif"}, ConformsTo: []string{Audio}},
	{Identifier: "org.xiph.flac", MIMETypes: []string{"audio/flac"}, Extensions: []string{"flac"}, ConformsTo: []string{Audio}},
	{Identifier: "org.xiph.ogg-audio", MIMETypes: []string{"audio/ogg"}, Extensions: []string{"ogg", "oga"}, ConformsTo: []string{Audio}},

	// Video
	{Identifier: Movie, ConformsTo: []string{Audiovisual}},
	{Identifier: Video, ConformsTo: []string{Movie}},
	{Identifier: "public.mpeg-4", MIMETypes: []string{"video/mp4"}, Extensions: []string{"mp4", "mpg4"}, ConformsTo: []string{Video}},
	{Identifier: "com.apple.quicktime-movie", MIMETypes: []string{"video/quicktime"}, Extensions: []string{"mov", "qt"}, ConformsTo: []string{Video}},
	{Identifier: "public.mpeg", MIMETypes: []string{"video/mpeg"}, Extensions: []string{"mpeg", "mpg"}, ConformsTo: []string{Video}},
	{Identifier: "public.avi", MIMETypes: []string{"video/x-msvideo", "video/avi"}, Extensions: []string{"avi"}, ConformsTo: []string{Video}},
	{Identifier: "org.webmproject.webm", MIMETypes: []string{"video/webm"}, Extensions: []string{"webm"}, ConformsTo: []string{Video}},
	{Identifier: "public.3gpp", MIMETypes: []string{"video/3gpp"}, Extensions: []string{"3gp", "3gpp"}, ConformsTo: []string{Video}},
	{Identifier: "org.matroska.mkv", MIMETypes: []string{"video/x-matroska"}, Extensions: []string{"mkv"}, ConformsTo: []string{Video}},

	// Fonts
	{Identifier: Font, ConformsTo: []string{Data, Content}},
	{Identifier: "public.truetype-ttf-font", MIMETypes: []string{"font/ttf"}, Extensions: []string{"ttf"}, ConformsTo: []string{Font}},
	{Identifier: "public.opentype-font", MIMETypes: []string{"font/otf"}, Extensions: []string{"otf"}, ConformsTo: []string{Font}},
	{Identifier: "org.w3.woff", MIMETypes: []string{"font/woff"}, Extensions: []string{"woff"}, ConformsTo: []string{Font}},
	{Identifier: "org.w3.woff2", MIMETypes: []string{"font/woff2"}, Extensions: []string{"woff2"}, ConformsTo: []string{Font}},

	// Documents
	{Identifier: "com.adobe.pdf", MIMETypes: []string{"application/pdf"}, Extensions: []string{"pdf"}, ConformsTo: []string{Data, Content}},
	{Identifier: "org.openxmlformats.wordprocessingml.document", MIMETypes: []string{"application/vnd.openxmlformats-officedocument.wordprocessingml.document"}, Extensions: []string{"docx"}, ConformsTo: []string{Data, Content}},
	{Identifier: "org.openxmlformats.spreadsheetml.sheet", MIMETypes: []string{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}, Extensions: []string{"xlsx"}, ConformsTo: []string{Data, Content}},
	{Identifier: "org.openxmlformats.presentationml.presentation", MIMETypes: []string{"application/vnd.openxmlformats-officedocument.presentationml.presentation"}, Extensions: []string{"pptx"}, ConformsTo: []string{Data, Content}},
	{Identifier: "com.microsoft.word.doc", MIMETypes: []string{"application/msword"}, Extensions: []string{"doc"}, ConformsTo: []string{Data, Content}},
	{Identifier: "com.microsoft.excel.xls", MIMETypes: []string{"application/vnd.ms-excel"}, Extensions: []string{"xls"}, ConformsTo: []string{Data, Content}},
	{Identifier: "com.microsoft.powerpoint.ppt", MIMETypes: []string{"application/vnd.ms-powerpoint"}, Extensions: []string{"ppt"}, ConformsTo: []string{Data, Content}},
	{Identifier: "org.oasis-open.opendocument.text", MIMETypes: []string{"application/vnd.oasis.opendocument.text"}, Extensions: []string{"odt"}, ConformsTo: []string{Data, Content}},
	{Identifier: "org.idpf.epub-container", MIMETypes: []string{"application/epub+zip"}, Extensions: []string{"epub"}, ConformsTo: []string{Data, Content}},

	// Archives
	{Identifier: "public.zip-archive", MIMETypes: []string{"application/zip"}, Extensions: []string{"zip"}, ConformsTo: []string{Archive}},
	{Identifier: "org.gnu.gnu-zip-archive", MIMETypes: []string{"application/gzip", "application/x-gzip"}, Extensions: []string{"gz", "gzip"}, ConformsTo: []string{Archive}},
	{Identifier: "public.tar-archive", MIMETypes: []string{"application/x-tar"}, Extensions: []string{"tar"}, ConformsTo: []string{Archive}},
	{Identifier: "org.7-zip.7-zip-archive", MIMETypes: []string{"application/x-7z-compressed"}, Extensions: []string{"7z"}, ConformsTo: []string{Archive}},
}
