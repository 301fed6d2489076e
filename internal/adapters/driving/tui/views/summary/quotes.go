package summary

// legalQuotes rotate under the uploading notice.
var legalQuotes = []string{
	"\"Ignorantia juris non excusat.\" Ignorance of the law excuses no one.",
	"\"Pacta sunt servanda.\" Agreements must be kept.",
	"\"Audi alteram partem.\" Let the other side be heard.",
	"\"Caveat emptor.\" Let the buyer beware.",
	"\"Ubi jus ibi remedium.\" Where there is a right, there is a remedy.",
	"\"Nemo judex in causa sua.\" No one should be a judge in their own cause.",
	"\"Lex non cogit ad impossibilia.\" The law does not compel the impossible.",
}

// quoteSteps is how many animation steps each quote stays visible.
const quoteSteps = 8

// Quote returns the quote shown at animation step.
func Quote(step int) string {
	if step < 0 {
		step = -step
	}
	return legalQuotes[(step/quoteSteps)%len(legalQuotes)]
}
