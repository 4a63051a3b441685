package storyteller

// Delimiter separates title, riddle and solution in the provider's answer.
const Delimiter = "|||"

// Prompt asks for a new Hungarian black story in the TITLE ||| RIDDLE ||| SOLUTION format.
const Prompt = `
Találj ki egy új, kreatív 'Fekete Történetet' (Black Stories) magyarul.
Legyen morbid, trükkös, de logikus.

A válaszod formátuma SZIGORÚAN a következő legyen (a ||| jelekkel elválasztva):
CÍM ||| REJTÉLY (amit a játékosok látnak, legyen rövid és talányos) ||| MEGOLDÁS (a teljes sztori)

Példa a kimenetre:
A szauna ||| Egy hulla van a szaunában és egy tócsa víz. ||| Jégcsappal szúrták le, ami elolvadt.
`
