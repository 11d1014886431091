package render

// descriptiveStructures render a single complaint as a full sentence.
var descriptiveStructures = []string{
	"The {aspect} was {problem}",
	"{aspect} had {problem}",
	"Poor {aspect} with {problem}",
	"Terrible {aspect} - {problem}",
	"Disappointed with {aspect} that had {problem}",
	"{aspect} was disappointing with {problem}",
	"Awful {aspect} suffering from {problem}",
	"The {aspect} experienced {problem}",
	"Unacceptable {aspect} with {problem}",
	"Bad {aspect} featuring {problem}",
	"{aspect} in poor condition with {problem}",
	"Horrible {aspect} plagued by {problem}",
	"The {aspect} was terrible due to {problem}",
	"{aspect} completely ruined by {problem}",
	"Disgusting {aspect} with obvious {problem}",
	"Shocking {aspect} that showed {problem}",
	"Appalling {aspect} marked by {problem}",
	"Dreadful {aspect} contaminated with {problem}",
	"Pathetic {aspect} destroyed by {problem}",
	"Repulsive {aspect} overwhelmed by {problem}",
}

// bookingStructures mimic the loose phrasing of booking-site reviews. Some
// of them drop one of the slots on purpose.
var bookingStructures = []string{
	"The {aspect} {problem}",
	"{aspect} {problem}",
	"The {aspect} was {problem}",
	"Really the only thing I can fault was the {aspect} it {problem}",
	"To be really picky the {aspect} {problem}",
	"Would have liked the {aspect} not {problem}",
	"I thought that the {aspect} {problem}",
	"The {aspect} {problem} but not a massive deal",
	"Choice of {aspect}",
	"No {aspect}",
	"{aspect} could be {problem}",
	"Extremely {problem} {aspect}",
	"Sound proofing is poor {aspect} {problem}",
	"Needs {problem} {aspect}",
	"I cannot believe {aspect} {problem}",
	"Calling {aspect} {problem}",
	"Dated {aspect} and {problem}",
	"Didn't realize but {aspect} {problem}",
	"Very peculiar {aspect} {problem}",
	"The {aspect} was quite {problem}",
	"Found the {aspect} {problem}",
	"Not a single bad thing except {aspect} {problem}",
	"For sure not {problem} {aspect}",
	"Just the {aspect} {problem}",
	"The first ever hotel with {aspect} {problem}",
	"The {aspect} {problem} well below standard",
	"11:00 is an early {aspect}",
	"Maybe the {aspect} {problem}",
	"Wi Fi {problem}",
	"This should not be {problem}",
	"The only problem we had was {aspect} {problem}",
	"expensive {aspect}",
	"The property is a bit dated with {aspect} {problem}",
	"Asked for {aspect} but got {problem}",
	"Every thing is fine except the {aspect} {problem}",
	"Aircon {problem}",
	"Small {aspect} only but not a big deal",
	"The staff at {aspect} {problem}",
	"BREAKFAST {problem}",
	"Rooms are not very well {problem}",
	"Room was a little {problem}",
	"The neighbourhood {problem}",
	"9 pounds for a {aspect}",
	"Very unfriendly {aspect} {problem}",
	"I still haven't got my {aspect} {problem}",
	"The room was {problem}",
	"Just round the back is {aspect} {problem}",
	"Rooms could be a bit {problem}",
	"For sure not a 4 star hotel the {aspect} {problem}",
	"The first ever hotel I have stayed in with {aspect} {problem}",
	"Just the bare essentials {aspect} {problem}",
	"No {aspect} {problem}",
	"Room was {problem}",
	"The room and {aspect} were {problem}",
	"The lift is quite {problem}",
	"Small {aspect}",
	"Our room was really {problem}",
	"The price of {aspect} {problem}",
	"Harassment on {aspect}",
	"location is a bit {problem}",
	"Small room Small {aspect}",
	"I thought that the {aspect} was a little {problem}",
	"1 {aspect} {problem}",
	"no {aspect} available in the room",
	"Bed was {problem}",
	"Quicker {aspect} {problem}",
	"Bed was a bit {problem}",
	"Small bathroom {aspect} {problem}",
	"One of the booked rooms was very {problem}",
	"Slow service for {aspect}",
	"The property is a bit {problem}",
	"Asked for a double bed but got {aspect} {problem}",
	"Two people on {aspect} {problem}",
	"The {aspect} quality was not good enough",
	"Small {aspect} only",
	"The staff at the {aspect} {problem}",
	"BREAKFAST NOT VERY {problem}",
	"The {aspect} is very bad",
	"9 for a glass of {aspect}",
	"For sure not a 4 star {aspect} {problem}",
	"No {aspect} {problem} facilities in room",
	"The {aspect} was awful and {problem}",
	"The lift is quite {problem} Free {aspect} is very {problem}",
	"Bed was {problem} Hassle with {aspect}",
	"Small {aspect} {problem}",
	"The property is a bit {problem} with {aspect} {problem}",
	"Every thing is fine in this hotel except the {aspect} {problem}",
	"Reception {aspect} was {problem}",
	"The {aspect} is very {problem}",
}
