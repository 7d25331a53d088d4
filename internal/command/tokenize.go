package command

// MaxParams is the maximum number of parameter words kept per line.
// Words beyond the limit are silently dropped.
const MaxParams = 8

// delimiter reports whether c separates words on a command line.
func delimiter(c byte) bool {
	return c == ' ' || c == ','
}

// Tokenize splits a completed line into a command word and parameter
// words on runs of space/comma delimiters. The command word is empty
// for blank lines. At most MaxParams parameters are returned.
func Tokenize(line string) (string, []string) {
	var words []string
	start := -1
	for i := 0; i < len(line); i++ {
		if delimiter(line[i]) {
			if start >= 0 {
				words = append(words, line[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, line[start:])
	}

	if len(words) == 0 {
		return "", nil
	}
	var params []string
	if len(words) > 1 {
		params = words[1:]
	}
	if len(params) > MaxParams {
		params = params[:MaxParams]
	}
	return words[0], params
}
