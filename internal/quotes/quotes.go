package quotes

import (
	"fmt"
	"math/rand"
)

// Quote is a motivational line shown on the timer view.
type Quote struct {
	Text   string
	Author string
	Field  string
}

// Attribution renders the author line.
func (q Quote) Attribution() string {
	if q.Field == "" {
		return "— " + q.Author
	}
	return fmt.Sprintf("— %s, %s", q.Author, q.Field)
}

var all = []Quote{
	{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs", Field: "Entrepreneur & Innovator"},
	{Text: "Education is the most powerful weapon which you can use to change the world.", Author: "Nelson Mandela", Field: "Political Leader & Activist"},
	{Text: "The beautiful thing about learning is that no one can take it away from you.", Author: "B.B. King", Field: "Musician & Artist"},
	{Text: "Live as if you were to die tomorrow. Learn as if you were to live forever.", Author: "Mahatma Gandhi", Field: "Philosopher & Leader"},
	{Text: "The capacity to learn is a gift; the ability to learn is a skill; the willingness to learn is a choice.", Author: "Brian Herbert", Field: "Author"},
	{Text: "Intelligence is the ability to adapt to change.", Author: "Stephen Hawking", Field: "Theoretical Physicist"},
	{Text: "The mind is not a vessel to be filled, but a fire to be kindled.", Author: "Plutarch", Field: "Ancient Philosopher"},
	{Text: "I have no special talents. I am only passionately curious.", Author: "Albert Einstein", Field: "Theoretical Physicist"},
	{Text: "The expert in anything was once a beginner.", Author: "Helen Hayes", Field: "Actress & Author"},
	{Text: "Success is not final, failure is not fatal: it is the courage to continue that counts.", Author: "Winston Churchill", Field: "Statesman & Author"},
	{Text: "The roots of education are bitter, but the fruit is sweet.", Author: "Aristotle", Field: "Ancient Philosopher"},
	{Text: "An investment in knowledge pays the best interest.", Author: "Benjamin Franklin", Field: "Polymath & Founding Father"},
	{Text: "The more that you read, the more things you will know. The more that you learn, the more places you'll go.", Author: "Dr. Seuss", Field: "Author"},
	{Text: "Learning never exhausts the mind.", Author: "Leonardo da Vinci", Field: "Polymath & Artist"},
	{Text: "The only true wisdom is in knowing you know nothing.", Author: "Socrates", Field: "Ancient Philosopher"},
	{Text: "It does not matter how slowly you go as long as you do not stop.", Author: "Confucius", Field: "Ancient Philosopher"},
	{Text: "Genius is one percent inspiration and ninety-nine percent perspiration.", Author: "Thomas Edison", Field: "Inventor"},
	{Text: "The function of education is to teach one to think intensively and to think critically.", Author: "Martin Luther King Jr.", Field: "Civil Rights Leader"},
	{Text: "I am still learning.", Author: "Michelangelo", Field: "Artist & Sculptor"},
	{Text: "The beautiful thing about learning is nobody can take it away from you.", Author: "B.B. King", Field: "Musician"},
	{Text: "Study hard what interests you the most in the most undisciplined, irreverent and original manner possible.", Author: "Richard Feynman", Field: "Theoretical Physicist"},
	{Text: "The important thing is not to stop questioning. Curiosity has its own reason for existing.", Author: "Albert Einstein", Field: "Theoretical Physicist"},
	{Text: "Knowledge is power. Information is liberating. Education is the premise of progress.", Author: "Kofi Annan", Field: "Diplomat & UN Secretary-General"},
	{Text: "The greatest enemy of knowledge is not ignorance, it is the illusion of knowledge.", Author: "Stephen Hawking", Field: "Theoretical Physicist"},
	{Text: "Tell me and I forget. Teach me and I remember. Involve me and I learn.", Author: "Benjamin Franklin", Field: "Polymath & Founding Father"},
	{Text: "Lock yourself away and study until you collapse, true brilliance comes from obsession", Author: "Isaac Newton", Field: "Father of Physics"},
}

// All returns every quote.
func All() []Quote {
	return append([]Quote(nil), all...)
}

// Random picks a quote.
func Random() Quote {
	return all[rand.Intn(len(all))] //nolint:gosec // display only
}

// Next picks a random quote different from current.
func Next(current Quote) Quote {
	for {
		q := Random()
		if q != current {
			return q
		}
	}
}
