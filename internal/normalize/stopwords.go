package normalize

// stopwords is the fixed Portuguese stopword table. It is initialized once
// and never mutated. Negations ("não", "nunca") are deliberately absent:
// they carry classification signal and must reach the classifiers.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "o", "as", "os", "um", "uma", "uns", "umas",
		"de", "do", "da", "dos", "das", "dum", "duma",
		"em", "no", "na", "nos", "nas", "num", "numa",
		"por", "pelo", "pela", "pelos", "pelas",
		"para", "pra", "pro", "com", "sem", "sob", "sobre",
		"ao", "aos", "à", "às", "até", "após", "entre", "desde",
		"e", "ou", "mas", "que", "se", "como", "porque", "pois",
		"quando", "onde", "qual", "quais", "quem", "cujo", "cuja",
		"meu", "minha", "meus", "minhas", "teu", "tua", "teus", "tuas",
		"seu", "sua", "seus", "suas", "nosso", "nossa", "nossos", "nossas",
		"este", "esta", "estes", "estas", "isto",
		"esse", "essa", "esses", "essas", "isso",
		"aquele", "aquela", "aqueles", "aquelas", "aquilo",
		"eu", "tu", "ele", "ela", "nós", "vós", "eles", "elas",
		"você", "vocês", "me", "te", "lhe", "lhes",
		"já", "também", "ainda", "então", "assim", "aqui", "ali", "lá",
		"mais", "menos", "muito", "muita", "muitos", "muitas",
		"pouco", "pouca", "poucos", "poucas",
		"todo", "toda", "todos", "todas", "tudo", "cada",
		"outro", "outra", "outros", "outras",
		"ser", "é", "são", "era", "eram", "foi", "foram", "seja",
		"estar", "está", "estão", "estava", "estavam", "esteja",
		"ter", "tem", "têm", "tinha", "tinham", "tenha",
		"há", "houve", "haja", "vai", "vão", "ia", "iam",
		"antes", "depois", "durante", "enquanto", "logo", "agora",
	} {
		stopwords[w] = struct{}{}
	}
}
