// Copyright 2026 OmniConvert Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package omniconvert

import "strings"

// Category is the coarse classification of a format token. It drives
// strategy selection and is derived from the target format, never stored.
type Category string

const (
	CategoryImage    Category = "image"
	CategoryVideo    Category = "video"
	CategoryAudio    Category = "audio"
	CategoryDocument Category = "document"
	CategoryArchive  Category = "archive"
	CategoryUnknown  Category = "unknown"
)

// Format membership tables. Initialized once at process start and never
// mutated afterwards.
var (
	imageFormats = newSet(
		"3fr", "arw", "avif", "bmp", "cr2", "crw", "cur", "dcm", "dcr", "dds",
		"dng", "erf", "exr", "fax", "fts", "g3", "g4", "gif", "gv", "hdr",
		"heic", "heif", "hrz", "ico", "iiq", "ipl", "jbg", "jbig", "jfi",
		"jfif", "jif", "jnx", "jp2", "jpe", "jpeg", "jpg", "jps", "k25", "kdc",
		"mac", "map", "mef", "mng", "mrw", "mtv", "nef", "nrw", "orf", "otb",
		"pal", "palm", "pam", "pbm", "pcd", "pct", "pcx", "pdb", "pef", "pes",
		"pfm", "pgm", "pgx", "picon", "pict", "pix", "plasma", "png", "pnm",
		"ppm", "psd", "pwp", "raf", "ras", "rgb", "rgba", "rgbo", "rgf", "rla",
		"rle", "rw2", "sct", "sfw", "sgi", "six", "sixel", "sr2", "srf", "sun",
		"svg", "tga", "tiff", "tim", "tm2", "uyvy", "viff", "vips", "wbmp",
		"webp", "wmz", "wpg", "x3f", "xbm", "xc", "xcf", "xpm", "xv", "xwd",
		"yuv",
	)

	videoFormats = newSet(
		"3g2", "3gp", "aaf", "asf", "av1", "avchd", "avi", "cavs", "divx",
		"dv", "f4v", "flv", "hevc", "m2ts", "m2v", "m4v", "mjpeg", "mkv",
		"mod", "mov", "mp4", "mpeg", "mpeg-2", "mpg", "mts", "mxf", "ogv",
		"rm", "rmvb", "swf", "tod", "ts", "vob", "webm", "wmv", "wtv", "xvid",
	)

	audioFormats = newSet(
		"8svx", "aac", "ac3", "aiff", "amb", "amr", "ape", "au", "avr", "caf",
		"cdda", "cvs", "cvsd", "cvu", "dss", "dts", "dvms", "fap", "flac",
		"fssd", "gsm", "gsrt", "hcom", "htk", "ima", "ircam", "m4a", "m4r",
		"maud", "mp2", "mp3", "nist", "oga", "ogg", "opus", "paf", "prc",
		"pvf", "ra", "sd2", "shn", "sln", "smp", "snd", "sndr", "sndt", "sou",
		"sph", "spx", "tak", "tta", "txw", "vms", "voc", "vox", "vqf", "w64",
		"wav", "wma", "wv", "wve", "xa",
	)

	documentFormats = newSet(
		"abw", "aw", "csv", "dbk", "djvu", "doc", "docm", "docx", "dot",
		"dotm", "dotx", "html", "kwd", "odt", "oxps", "pdf", "rtf", "sxw",
		"txt", "wps", "xls", "xlsx", "xps",
	)
)

// Archive targets are matched as literal tokens rather than a set: archive
// classification only matters on the target side of a conversion.
const (
	archiveZip   = "zip"
	archiveTar   = "tar"
	archiveTarGz = "tar.gz"
	archiveTgz   = "tgz"
)

func newSet(members ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

// Classify maps a format token (lowercase extension, no leading dot) to its
// category. Multi-part tokens such as "tar.gz" are matched longest suffix
// first before falling back to the final segment. Unknown tokens classify as
// CategoryUnknown, which is a valid terminal state rather than an error.
func Classify(token string) Category {
	token = strings.ToLower(strings.TrimPrefix(token, "."))

	switch token {
	case archiveZip, archiveTar, archiveTarGz, archiveTgz:
		return CategoryArchive
	}

	if cat, ok := classifyToken(token); ok {
		return cat
	}

	// Fall back to the last segment of a multi-part token.
	if i := strings.LastIndexByte(token, '.'); i >= 0 {
		if cat, ok := classifyToken(token[i+1:]); ok {
			return cat
		}
	}

	return CategoryUnknown
}

func classifyToken(token string) (Category, bool) {
	if _, ok := imageFormats[token]; ok {
		return CategoryImage, true
	}
	if _, ok := videoFormats[token]; ok {
		return CategoryVideo, true
	}
	if _, ok := audioFormats[token]; ok {
		return CategoryAudio, true
	}
	if _, ok := documentFormats[token]; ok {
		return CategoryDocument, true
	}
	return CategoryUnknown, false
}
