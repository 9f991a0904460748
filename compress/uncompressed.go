package compress

func init() {
	compressors[Uncompressed] = &Compressor{
		Compress: func(buf []byte) []byte {
			return buf
		},
		Uncompress: func(buf []byte) ([]byte, error) {
			return buf, nil
		},
	}
}
