package prompts

// Catalogue content. Emotion keys must match models.Emotions.

var gratitudeQuestions = []string{
	"What made you smile today?",
	"Who are you grateful for and why?",
	"What is something beautiful you noticed today?",
	"What is a small victory you experienced today?",
	"What comfort are you grateful for today?",
	"What opportunity are you thankful for?",
	"What about your health are you grateful for?",
	"What memory are you cherishing today?",
	"What skill or talent are you grateful to have?",
	"What about your home brings you joy?",
	"What act of kindness did you witness or receive?",
	"What food or meal are you grateful for today?",
	"What aspect of nature are you thankful for?",
	"What technology or tool made your day easier?",
	"What relationship in your life brings you happiness?",
	"What personal quality are you grateful for?",
	"What challenge helped you grow?",
	"What tradition or ritual do you appreciate?",
	"What book, song, or piece of art touched you today?",
	"What about this moment are you grateful for?",
}

var emotionQuestions = map[string][]string{
	"anxiety": {
		"What specifically is making you feel anxious right now?",
		"What physical sensations are you experiencing with this anxiety?",
		"What thoughts are running through your mind?",
		"What would you say to a friend experiencing this same anxiety?",
		"What has helped you manage anxiety in the past?",
		"What are you most worried about happening?",
	},
	"sadness": {
		"What is contributing to your sadness today?",
		"What would you need right now to feel comforted?",
		"What are you grieving or missing?",
		"How would you describe this sadness to someone who cares about you?",
		"What memories bring you comfort during sad times?",
		"What have you learned from previous experiences with sadness?",
	},
	"stress": {
		"What are the main sources of stress in your life right now?",
		"What aspects of this stress are within your control?",
		"What would your ideal stress-free day look like?",
		"What strategies have worked for you in managing stress before?",
		"What would happen if you let go of one thing that's stressing you?",
		"What boundaries could you set to reduce stress?",
	},
	"excitement": {
		"What are you most excited about right now?",
		"How does this excitement feel in your body?",
		"What possibilities are you looking forward to?",
		"What makes this experience special for you?",
		"How do you want to celebrate or share this excitement?",
		"What hopes and dreams does this excitement connect to?",
	},
	"anger": {
		"What triggered your anger today?",
		"What values or boundaries feel like they've been crossed?",
		"What would you want the other person to understand?",
		"What would help you feel heard and respected?",
		"What physical sensations are you experiencing with this anger?",
		"What would a constructive response to this anger look like?",
	},
	"happiness": {
		"What is bringing you joy today?",
		"How does this happiness feel in your body?",
		"What would you want to remember about this happy moment?",
		"Who would you like to share this happiness with?",
		"What made this happiness possible?",
		"How does this happiness connect to your values or goals?",
	},
	"joy": {
		"What is filling you with joy right now?",
		"How is this joy different from everyday happiness?",
		"What makes this moment feel magical or special?",
		"What would you want to preserve about this joyful experience?",
		"How does this joy connect you to something bigger than yourself?",
		"What would you want to do to honor this feeling?",
	},
	"feeling overwhelmed": {
		"What specifically is making you feel overwhelmed?",
		"What would it look like to tackle just one small piece of this?",
		"What could you delegate, postpone, or eliminate entirely?",
		"What would your most supportive friend advise you to do?",
		"What are your non-negotiable priorities right now?",
		"What would help you feel more organized or prepared?",
	},
	"jealousy": {
		"What specifically are you feeling jealous about?",
		"What does this jealousy reveal about your own desires or values?",
		"What would you want to have or achieve for yourself?",
		"What steps could you take toward what you're envious of?",
		"What unique strengths and qualities do you bring to the world?",
		"What would self-compassion look like in this moment?",
	},
	"fatigue": {
		"What is contributing to your fatigue today?",
		"What would ideal rest look like for you right now?",
		"What is draining your energy the most?",
		"What activities or people energize you?",
		"What would you need to feel more restored?",
		"What boundaries could you set to protect your energy?",
	},
	"insecurity": {
		"What is making you feel insecure right now?",
		"What would you want to believe about yourself instead?",
		"What evidence contradicts these insecure thoughts?",
		"What would you tell a friend who felt this way about themselves?",
		"What are you most proud of about yourself?",
		"What unique qualities make you who you are?",
	},
	"doubt": {
		"What decision or situation is causing you to doubt yourself?",
		"What would you do if you trusted yourself completely?",
		"What past experiences show your ability to handle challenges?",
		"What would someone who believes in you say right now?",
		"What information or support would help you feel more confident?",
		"What would you advise someone else in your situation?",
	},
	"catastrophic thinking": {
		"What worst-case scenario is playing in your mind?",
		"What evidence supports this catastrophic thought?",
		"What evidence contradicts it?",
		"What would be a more balanced way to view this situation?",
		"What would you tell a friend who was thinking this way?",
		"What has actually happened in similar situations before?",
	},
}

var quotes = map[string][]Quotation{
	"anxiety": {
		{Text: "You have been assigned this mountain to show others it can be moved.", Author: "Mel Robbins"},
		{Text: "Anxiety is the dizziness of freedom.", Author: "Søren Kierkegaard"},
		{Text: "The only way out is through.", Author: "Robert Frost"},
	},
	"sadness": {
		{Text: "The wound is the place where the Light enters you.", Author: "Rumi"},
		{Text: "What we have once enjoyed we can never lose.", Author: "Helen Keller"},
		{Text: "The way sadness works is one of the strange riddles of the world.", Author: "Lemony Snicket"},
	},
	"stress": {
		{Text: "You have power over your mind - not outside events. Realize this, and you will find strength.", Author: "Marcus Aurelius"},
		{Text: "The greatest weapon against stress is our ability to choose one thought over another.", Author: "William James"},
		{Text: "Don't worry about what you can't control.", Author: "John Wooden"},
	},
	"excitement": {
		{Text: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt"},
		{Text: "Life is either a daring adventure or nothing at all.", Author: "Helen Keller"},
		{Text: "The best time to plant a tree was 20 years ago. The second best time is now.", Author: "Chinese Proverb"},
	},
	"anger": {
		{Text: "Holding on to anger is like grasping a hot coal with the intent of throwing it at someone else; you are the one who gets burned.", Author: "Buddha"},
		{Text: "For every minute you remain angry, you give up sixty seconds of peace of mind.", Author: "Ralph Waldo Emerson"},
		{Text: "Anger is an acid that can do more harm to the vessel in which it is stored than to anything on which it is poured.", Author: "Mark Twain"},
	},
	"happiness": {
		{Text: "Happiness is not something ready-made. It comes from your own actions.", Author: "Dalai Lama"},
		{Text: "The happiest people don't have the best of everything, they just make the best of everything.", Author: "Unknown"},
		{Text: "Happiness is a warm puppy.", Author: "Charles M. Schulz"},
	},
	"joy": {
		{Text: "Joy is not in things; it is in us.", Author: "Richard Wagner"},
		{Text: "Find joy in the ordinary.", Author: "Max Lucado"},
		{Text: "Joy is the simplest form of gratitude.", Author: "Karl Barth"},
	},
	"feeling overwhelmed": {
		{Text: "You don't have to see the whole staircase, just take the first step.", Author: "Martin Luther King Jr."},
		{Text: "One day at a time.", Author: "Anonymous"},
		{Text: "Progress, not perfection.", Author: "Anonymous"},
	},
	"jealousy": {
		{Text: "Comparison is the thief of joy.", Author: "Theodore Roosevelt"},
		{Text: "The only person you are destined to become is the person you decide to be.", Author: "Ralph Waldo Emerson"},
		{Text: "Don't compare your beginning to someone else's middle.", Author: "Jon Acuff"},
	},
	"fatigue": {
		{Text: "Take care of your body. It's the only place you have to live.", Author: "Jim Rohn"},
		{Text: "Rest when you're weary. Refresh and renew yourself, your body, your mind, your spirit.", Author: "Ralph Marston"},
		{Text: "Sleep is the best meditation.", Author: "Dalai Lama"},
	},
	"insecurity": {
		{Text: "No one can make you feel inferior without your consent.", Author: "Eleanor Roosevelt"},
		{Text: "You are enough just as you are.", Author: "Meghan Markle"},
		{Text: "What lies behind us and what lies before us are tiny matters compared to what lies within us.", Author: "Ralph Waldo Emerson"},
	},
	"doubt": {
		{Text: "Doubt kills more dreams than failure ever will.", Author: "Suzy Kassem"},
		{Text: "The only way to make sense out of change is to plunge into it, move with it, and join the dance.", Author: "Alan Watts"},
		{Text: "Trust yourself. You know more than you think you do.", Author: "Benjamin Spock"},
	},
	"catastrophic thinking": {
		{Text: "Worry is a misuse of imagination.", Author: "Dan Zadra"},
		{Text: "Today is the tomorrow you worried about yesterday.", Author: "Anonymous"},
		{Text: "You have survived 100% of your worst days so far.", Author: "Anonymous"},
	},
}
