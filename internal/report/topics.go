package report

// Topic pairs a human-readable label with the keywords that attribute a
// question to it. Matching is case-insensitive substring search over the
// question text and explanation; a question may match any number of topics.
type Topic struct {
	Name     string
	Keywords []string
}

// FallbackTopic collects questions no keyword list matched.
const FallbackTopic = "General Knowledge"

// DefaultTopics is the fixed classification table, covering the technical and
// aptitude domains the marketplace's tests draw from. Order matters: the
// strengths and weaknesses lists are truncated in table order, so broader
// topics come first. Treat this as configuration data, not logic.
var DefaultTopics = []Topic{
	{Name: "Data Structures", Keywords: []string{
		"array", "linked list", "stack", "queue", "binary tree", "graph", "hash table", "heap sort",
	}},
	{Name: "Algorithms", Keywords: []string{
		"algorithm", "sorting", "complexity", "recursion", "dynamic programming", "binary search", "greedy",
	}},
	{Name: "Memory Management", Keywords: []string{
		"pointer", "memory", "allocation", "garbage collect", "malloc", "dangling",
	}},
	{Name: "Object-Oriented Programming", Keywords: []string{
		"class", "inheritance", "polymorphism", "encapsulation", "abstraction", "constructor", "interface",
	}},
	{Name: "Databases", Keywords: []string{
		"sql", "database", "query", "normalization", "primary key", "foreign key", "transaction", "index",
	}},
	{Name: "Operating Systems", Keywords: []string{
		"process", "thread", "deadlock", "scheduling", "semaphore", "operating system", "kernel", "paging",
	}},
	{Name: "Networking", Keywords: []string{
		"network", "tcp", "udp", "http", "ip address", "dns", "socket", "osi",
	}},
	{Name: "Web Development", Keywords: []string{
		"html", "css", "javascript", "frontend", "backend", "rest api", "dom",
	}},
	{Name: "Quantitative Aptitude", Keywords: []string{
		"percentage", "ratio", "average", "profit", "speed", "distance", "probability", "compound interest",
	}},
	{Name: "Logical Reasoning", Keywords: []string{
		"series", "analogy", "syllogism", "blood relation", "direction", "puzzle", "odd one out",
	}},
	{Name: "Verbal Ability", Keywords: []string{
		"synonym", "antonym", "grammar", "sentence", "passage", "vocabulary", "idiom",
	}},
}
