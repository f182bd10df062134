package ffmpeg

import "github.com/bnema/mediaconv/internal/domain"

func audioFormats() map[string]domain.Format {
	return map[string]domain.Format{
		domain.MIMEAudioMPEG: {
			Extension: "mp3",
			Codec:     "libmp3lame",
			Args:      []string{"-vn", "-acodec", "libmp3lame", "-b:a", "192k"},
		},
		domain.MIMEAudioWAV: {
			Extension: "wav",
			Codec:     "pcm_s16le",
			Args:      []string{"-vn", "-acodec", "pcm_s16le", "-ar", "44100", "-ac", "2"},
		},
		domain.MIMEAudioOGG: {
			Extension: "ogg",
			Codec:     "libvorbis",
			Args:      []string{"-vn", "-acodec", "libvorbis", "-q:a", "5"},
		},
	}
}

// h264Args is shared by every video container except webm.
func h264Args() []string {
	return []string{
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "23",
		"-c:a", "aac",
		"-b:a", "192k",
	}
}

func vp9Args() []string {
	return []string{
		"-c:v", "libvpx-vp9",
		"-b:v", "2M",
		"-c:a", "libopus",
		"-b:a", "160k",
	}
}

func videoFormats() map[string]domain.Format {
	return map[string]domain.Format{
		domain.MIMEVideoMP4:       {Extension: "mp4", Codec: "libx264/aac", Args: h264Args()},
		domain.MIMEVideoQuickTime: {Extension: "mov", Codec: "libx264/aac", Args: h264Args()},
		domain.MIMEVideoMatroska:  {Extension: "mkv", Codec: "libx264/aac", Args: h264Args()},
		domain.MIMEVideoWebM:      {Extension: "webm", Codec: "libvpx-vp9/libopus", Args: vp9Args()},
	}
}
