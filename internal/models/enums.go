package models

type Gender string

const (
	GenderMale   Gender = "мужской"
	GenderFemale Gender = "женский"
	GenderUnisex Gender = "унисекс"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnisex:
		return true
	}
	return false
}

type Colour string

const (
	ColourWhite     Colour = "белый"
	ColourBeige     Colour = "бежевый"
	ColourGray      Colour = "серый"
	ColourRed       Colour = "красный"
	ColourPink      Colour = "розовый"
	ColourOrange    Colour = "оранжевый"
	ColourYellow    Colour = "желтый"
	ColourGreen     Colour = "зеленый"
	ColourLightBlue Colour = "голубой"
	ColourBlue      Colour = "синий"
	ColourPurple    Colour = "фиолетовый"
	ColourBrown     Colour = "коричневый"
	ColourBlack     Colour = "черный"
)

var AllColours = []Colour{
	ColourWhite, ColourBeige, ColourGray, ColourRed, ColourPink, ColourOrange, ColourYellow,
	ColourGreen, ColourLightBlue, ColourBlue, ColourPurple, ColourBrown, ColourBlack,
}

var AllGenders = []Gender{GenderMale, GenderFemale, GenderUnisex}

func (c Colour) IsValid() bool {
	for _, known := range AllColours {
		if c == known {
			return true
		}
	}
	return false
}
